package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const (
	confirmMinWidth = 24
	confirmMaxWidth = 60
)

// ConfirmController is a modal yes/no dialog. While open it captures all key
// input; the caller acts on the returned choice.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 0
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.confirmLabel = ""
	c.cancelLabel = ""
	c.selected = 0
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, confirmChoiceCancel
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone
	case "tab":
		if c.selected == 0 {
			c.selected = 1
		} else {
			c.selected = 0
		}
		return true, confirmChoiceNone
	case "y":
		return true, confirmChoiceConfirm
	case "n":
		return true, confirmChoiceCancel
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return false, confirmChoiceNone
}

func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if c == nil || !c.active {
		return "", 0
	}
	x, y, width, _ := c.layout(maxWidth, maxHeight)
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)
	title := c.title
	if title == "" {
		title = "Confirm"
	}
	title = truncateToWidth(title, contentWidth)
	lines := []string{menuHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}

	message := strings.TrimSpace(c.message)
	if message != "" {
		wrapped := xansi.Hardwrap(message, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			line = truncateToWidth(line, contentWidth)
			lines = append(lines, menuItemStyle.Render(" "+padToWidth(line, contentWidth)+" "))
		}
	}

	confirm := "[" + c.confirmLabel + "]"
	cancel := "[" + c.cancelLabel + "]"
	leftWidth := contentWidth / 2
	rightWidth := contentWidth - leftWidth
	confirm = padToWidth(truncateToWidth(confirm, leftWidth), leftWidth)
	cancel = padToWidth(truncateToWidth(cancel, rightWidth), rightWidth)
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
		cancel = menuItemStyle.Render(cancel)
	} else {
		confirm = menuItemStyle.Render(confirm)
		cancel = selectedStyle.Render(cancel)
	}
	buttonLine := " " + confirm + cancel + " "
	if xansi.StringWidth(buttonLine) < innerWidth {
		buttonLine = padToWidth(buttonLine, innerWidth)
	}
	lines = append(lines, buttonLine)

	block := confirmBorderStyle.Render(strings.Join(lines, "\n"))
	if x > 0 {
		block = indentBlock(block, x)
	}
	return block, y
}

func (c *ConfirmController) layout(maxWidth, maxHeight int) (int, int, int, int) {
	width := c.dialogWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := c.dialogHeight(width)
	minRow := 1
	if maxHeight <= 0 {
		minRow = 0
	}
	x := 0
	y := minRow
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		y = (maxHeight-height)/2 + minRow
		if y < minRow {
			y = minRow
		}
	}
	return x, y, width, height
}

func (c *ConfirmController) dialogWidth() int {
	width := confirmMinWidth
	contentWidth := 0
	title := strings.TrimSpace(c.title)
	if title == "" {
		title = "Confirm"
	}
	if w := xansi.StringWidth(title); w > contentWidth {
		contentWidth = w
	}
	if w := xansi.StringWidth(c.message); w > contentWidth {
		contentWidth = w
	}
	buttonWidth := xansi.StringWidth(c.confirmLabel) + xansi.StringWidth(c.cancelLabel) + 6
	if buttonWidth > contentWidth {
		contentWidth = buttonWidth
	}
	if contentWidth+4 > width {
		width = contentWidth + 4
	}
	if width > confirmMaxWidth {
		width = confirmMaxWidth
	}
	return width
}

func (c *ConfirmController) dialogHeight(width int) int {
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)
	height := 2
	if strings.TrimSpace(c.message) != "" {
		height += len(strings.Split(xansi.Hardwrap(c.message, contentWidth, true), "\n"))
	}
	return height + 2
}
