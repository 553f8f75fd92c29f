package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"foreman/internal/assistant"
	"foreman/internal/types"
)

type chatRole int

const (
	chatRoleUser chatRole = iota
	chatRoleAssistant
)

type chatMessage struct {
	role chatRole
	text string
}

// ChatController is the assistant dialog overlay. It starts on a topic
// picker; once a topic is chosen the conversation is driven entirely by
// canned keyword matching, no network involved.
type ChatController struct {
	open        bool
	topicPicked bool
	topicCursor int
	topic       assistant.Topic
	wctx        assistant.Context
	workOrderID string
	messages    []chatMessage
	waiting     bool
	input       textinput.Model
	transcript  viewport.Model
	width       int
	height      int
}

func NewChatController(width, height int) *ChatController {
	input := textinput.New()
	input.Placeholder = "ask about safety, scheduling or tools"
	transcript := viewport.New(viewport.WithWidth(max(1, width-6)), viewport.WithHeight(max(1, height-8)))
	c := &ChatController{input: input, transcript: transcript}
	c.SetSize(width, height)
	return c
}

func (c *ChatController) IsOpen() bool {
	return c != nil && c.open
}

func (c *ChatController) Open(wo *types.WorkOrder) {
	c.open = true
	c.topicPicked = false
	c.topicCursor = 0
	c.messages = nil
	c.waiting = false
	c.workOrderID = ""
	c.wctx = assistant.Context{}
	if wo != nil {
		c.workOrderID = wo.ID
		c.wctx = assistant.Context{
			WorkOrderType: wo.TypeID,
			ServiceLevel:  serviceLevelLabel(wo.ServiceLevel),
		}
	}
	c.input.SetValue("")
	c.input.Blur()
}

func (c *ChatController) Close() {
	c.open = false
	c.messages = nil
	c.waiting = false
	c.input.Blur()
}

func (c *ChatController) SetSize(width, height int) {
	c.width = max(40, width)
	c.height = max(10, height)
	contentWidth := clamp(c.width-10, 30, 90)
	c.transcript.SetWidth(contentWidth)
	c.transcript.SetHeight(max(3, c.height-10))
	c.input.SetWidth(clamp(contentWidth-4, 20, 80))
	c.reflow()
}

func (c *ChatController) WorkOrderID() string { return c.workOrderID }

func (c *ChatController) TopicPicked() bool { return c.topicPicked }

func (c *ChatController) MoveTopic(delta int) {
	c.topicCursor = clamp(c.topicCursor+delta, 0, len(assistant.Topics)-1)
}

// PickTopic commits the highlighted topic and posts the greeting.
func (c *ChatController) PickTopic() {
	c.topic = assistant.Topics[clamp(c.topicCursor, 0, len(assistant.Topics)-1)]
	c.topicPicked = true
	c.messages = []chatMessage{{role: chatRoleAssistant, text: assistant.Greeting(c.topic, c.wctx)}}
	c.input.SetValue("")
	c.input.Focus()
	c.reflow()
}

func (c *ChatController) Topic() assistant.Topic { return c.topic }

func (c *ChatController) AssistantContext() assistant.Context { return c.wctx }

// Send posts the typed question and returns it; empty input or a pending
// reply blocks sending.
func (c *ChatController) Send() (string, bool) {
	if !c.topicPicked || c.waiting {
		return "", false
	}
	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return "", false
	}
	c.messages = append(c.messages, chatMessage{role: chatRoleUser, text: text})
	c.input.SetValue("")
	c.waiting = true
	c.reflow()
	return text, true
}

func (c *ChatController) Receive(text string) {
	if !c.open {
		return
	}
	c.waiting = false
	c.messages = append(c.messages, chatMessage{role: chatRoleAssistant, text: text})
	c.reflow()
}

func (c *ChatController) Waiting() bool { return c.waiting }

func (c *ChatController) UpdateInput(msg tea.Msg) tea.Cmd {
	if !c.topicPicked || c.waiting {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChatController) reflow() {
	if !c.open || !c.topicPicked {
		return
	}
	width := c.transcript.Width()
	bubbleWidth := max(10, width-4)
	blocks := make([]string, 0, len(c.messages)+1)
	for _, message := range c.messages {
		wrapped := xansi.Hardwrap(message.text, bubbleWidth, true)
		if message.role == chatRoleUser {
			blocks = append(blocks, indentBlock(userBubbleStyle.Render(wrapped), 2))
		} else {
			blocks = append(blocks, assistantBubbleStyle.Render(wrapped))
		}
	}
	if c.waiting {
		blocks = append(blocks, statusStyle.Render("assistant is typing..."))
	}
	c.transcript.SetContent(strings.Join(blocks, "\n"))
	c.transcript.GotoBottom()
}

func (c *ChatController) View() string {
	if !c.open {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("AI Assistant"))
	if c.workOrderID != "" {
		b.WriteString(statusStyle.Render("  " + c.workOrderID))
	}
	b.WriteString("\n\n")
	if !c.topicPicked {
		b.WriteString("Choose a topic:\n\n")
		for i, topic := range assistant.Topics {
			line := "  " + topic.Label()
			if i == c.topicCursor {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(rowStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + helpStyle.Render("↑/↓ select · enter start · esc close"))
	} else {
		b.WriteString(c.transcript.View())
		b.WriteString("\n\n> " + c.input.View())
		b.WriteString("\n" + helpStyle.Render("enter send · ↑/↓ scroll · esc close"))
	}
	return popupBorderStyle.Render(b.String())
}

func (c *ChatController) ScrollTranscript(lines int) {
	if lines < 0 {
		c.transcript.ScrollUp(-lines)
	} else {
		c.transcript.ScrollDown(lines)
	}
}

func serviceLevelLabel(level int) string {
	switch level {
	case 1:
		return "premium"
	case 2:
		return "standard"
	case 3:
		return "basic"
	default:
		return "standard"
	}
}
