package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type signInField int

const (
	signInFieldUsername signInField = iota
	signInFieldPassword
)

// SignInController renders the credential form shown while signed out. It
// also hosts the forgot-password sub-form, which reuses the username field
// as the email input.
type SignInController struct {
	username   textinput.Model
	password   textinput.Model
	email      textinput.Model
	focus      signInField
	submitting bool
	forgotMode bool
	errText    string
	infoText   string
	width      int
}

func NewSignInController(width int) *SignInController {
	username := textinput.New()
	username.Placeholder = "username"
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	email := textinput.New()
	email.Placeholder = "email address"
	c := &SignInController{
		username: username,
		password: password,
		email:    email,
	}
	c.Resize(width)
	c.username.Focus()
	return c
}

func (c *SignInController) Resize(width int) {
	c.width = max(30, width)
	fieldWidth := clamp(c.width-14, 16, 48)
	c.username.SetWidth(fieldWidth)
	c.password.SetWidth(fieldWidth)
	c.email.SetWidth(fieldWidth)
}

func (c *SignInController) SetSubmitting(submitting bool) {
	c.submitting = submitting
}

func (c *SignInController) Submitting() bool { return c.submitting }

func (c *SignInController) SetError(text string) {
	c.errText = strings.TrimSpace(text)
	c.infoText = ""
}

func (c *SignInController) SetInfo(text string) {
	c.infoText = strings.TrimSpace(text)
	c.errText = ""
}

func (c *SignInController) Credentials() (string, string) {
	return strings.TrimSpace(c.username.Value()), c.password.Value()
}

func (c *SignInController) Email() string {
	return strings.TrimSpace(c.email.Value())
}

func (c *SignInController) ForgotMode() bool { return c.forgotMode }

func (c *SignInController) EnterForgotMode() {
	c.forgotMode = true
	c.errText = ""
	c.infoText = ""
	c.email.SetValue("")
	c.email.Focus()
	c.username.Blur()
	c.password.Blur()
}

func (c *SignInController) LeaveForgotMode() {
	c.forgotMode = false
	c.errText = ""
	c.infoText = ""
	c.email.Blur()
	c.focus = signInFieldUsername
	c.username.Focus()
	c.password.Blur()
}

// CanSubmit reports whether both credential fields are non-empty; the
// submit action stays disabled until they are.
func (c *SignInController) CanSubmit() bool {
	username, password := c.Credentials()
	return username != "" && password != ""
}

func (c *SignInController) CycleFocus() {
	if c.forgotMode {
		return
	}
	if c.focus == signInFieldUsername {
		c.focus = signInFieldPassword
		c.username.Blur()
		c.password.Focus()
	} else {
		c.focus = signInFieldUsername
		c.password.Blur()
		c.username.Focus()
	}
}

func (c *SignInController) Update(msg tea.Msg) tea.Cmd {
	if c.submitting {
		return nil
	}
	var cmd tea.Cmd
	if c.forgotMode {
		c.email, cmd = c.email.Update(msg)
		return cmd
	}
	if c.focus == signInFieldUsername {
		c.username, cmd = c.username.Update(msg)
	} else {
		c.password, cmd = c.password.Update(msg)
	}
	return cmd
}

func (c *SignInController) View(width, height int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Work Order Approvals"))
	b.WriteString("\n\n")
	if c.forgotMode {
		b.WriteString(fieldLabelStyle.Render("Reset password"))
		b.WriteString("\n\n")
		b.WriteString("  email     " + c.email.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter send reset link · esc back"))
	} else {
		b.WriteString("  username  " + c.username.View())
		b.WriteString("\n")
		b.WriteString("  password  " + c.password.View())
		b.WriteString("\n\n")
		if c.submitting {
			b.WriteString(statusStyle.Render("Signing in..."))
		} else {
			b.WriteString(helpStyle.Render("enter sign in · tab switch field · ctrl+f forgot password"))
		}
	}
	if c.errText != "" {
		b.WriteString("\n\n" + errorStyle.Render(c.errText))
	}
	if c.infoText != "" {
		b.WriteString("\n\n" + statusStyle.Render(c.infoText))
	}
	card := panelBorderStyle.Render(b.String())
	if width <= 0 || height <= 0 {
		return card
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
