package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"foreman/internal/assistant"
	"foreman/internal/types"
)

func TestChatStartsOnTopicPickerAndGreets(t *testing.T) {
	c := NewChatController(100, 30)
	c.Open(&types.WorkOrder{ID: "WO-0007", TypeID: "MECH", ServiceLevel: 1})
	if c.TopicPicked() {
		t.Fatalf("expected topic picker first")
	}

	c.MoveTopic(1)
	c.PickTopic()
	if c.Topic() != assistant.TopicExperiences {
		t.Fatalf("expected second topic, got %q", c.Topic())
	}
	view := xansi.Strip(c.View())
	if !strings.Contains(view, "Operating Experiences") {
		t.Fatalf("expected greeting for chosen topic, got: %s", view)
	}
	if !strings.Contains(view, "premium") {
		t.Fatalf("expected service level woven into greeting, got: %s", view)
	}
}

func TestChatSendBlocksWhileWaiting(t *testing.T) {
	c := NewChatController(100, 30)
	c.Open(&types.WorkOrder{ID: "WO-0007", TypeID: "MECH", ServiceLevel: 2})
	c.PickTopic()

	c.input.SetValue("what safety precautions are needed?")
	text, ok := c.Send()
	if !ok || text == "" {
		t.Fatalf("expected send to succeed")
	}
	if !c.Waiting() {
		t.Fatalf("expected waiting for reply")
	}

	c.input.SetValue("another question")
	if _, ok := c.Send(); ok {
		t.Fatalf("expected send blocked while a reply is pending")
	}

	c.Receive("Wear PPE.")
	if c.Waiting() {
		t.Fatalf("expected waiting cleared after reply")
	}
	view := xansi.Strip(c.View())
	if !strings.Contains(view, "Wear PPE.") {
		t.Fatalf("expected reply in transcript, got: %s", view)
	}
}

func TestChatSendRejectsEmptyInput(t *testing.T) {
	c := NewChatController(100, 30)
	c.Open(&types.WorkOrder{ID: "WO-0007"})
	c.PickTopic()
	c.input.SetValue("   ")
	if _, ok := c.Send(); ok {
		t.Fatalf("expected blank input rejected")
	}
}
