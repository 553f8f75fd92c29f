package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestConfirmDialogWidthCappedByMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longID := strings.Repeat("WO-EXTREMELY-LONG-IDENTIFIER-", 6)
	c.Open("Confirm decision", "Approve work order "+longID+"?", "Approve", "Cancel")

	_, _, width, _ := c.layout(200, 40)
	if width != confirmMaxWidth {
		t.Fatalf("expected width %d, got %d", confirmMaxWidth, width)
	}
}

func TestConfirmDialogViewWrapsLongMessageWithinMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longID := strings.Repeat("WO-EXTREMELY-LONG-IDENTIFIER-", 6)
	c.Open("Confirm decision", "Approve work order "+longID+"?", "Approve", "Cancel")

	view, _ := c.View(confirmMaxWidth, 40)
	plain := xansi.Strip(view)
	lines := strings.Split(plain, "\n")
	if len(lines) <= 6 {
		t.Fatalf("expected wrapped dialog lines, got %d lines: %q", len(lines), plain)
	}
	maxWidth := 0
	for _, line := range lines {
		if w := xansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth > confirmMaxWidth {
		t.Fatalf("expected wrapped lines to fit max width %d, got %d", confirmMaxWidth, maxWidth)
	}
}

func TestConfirmKeysResolveChoice(t *testing.T) {
	c := NewConfirmController()
	c.Open("Confirm decision", "Approve work order WO-0007?", "Approve", "Cancel")

	handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !handled || choice != confirmChoiceConfirm {
		t.Fatalf("expected enter on default button to confirm, handled=%v choice=%v", handled, choice)
	}

	c.Open("Confirm decision", "Approve work order WO-0007?", "Approve", "Cancel")
	if handled, _ := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyTab}); !handled {
		t.Fatalf("expected tab to be handled")
	}
	_, choice = c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if choice != confirmChoiceCancel {
		t.Fatalf("expected enter after tab to cancel, got %v", choice)
	}

	c.Open("Confirm decision", "Approve work order WO-0007?", "Approve", "Cancel")
	_, choice = c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEsc})
	if choice != confirmChoiceCancel {
		t.Fatalf("expected esc to cancel, got %v", choice)
	}
}
