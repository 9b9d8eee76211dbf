package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// loginForm holds the two credential inputs for the login view.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focused  int
	errMsg   string
	busy     bool
}

func newLoginForm() loginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = searchPromptStyle.Render("> ")
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = searchPromptStyle.Render("> ")
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginForm{username: user, password: pass}
}

func (f *loginForm) next() {
	if f.focused == 0 {
		f.focused = 1
		f.username.Blur()
		f.password.Focus()
	} else {
		f.focused = 0
		f.password.Blur()
		f.username.Focus()
	}
}

func (f *loginForm) reset() {
	f.password.SetValue("")
	f.busy = false
}

func (f *loginForm) render(width, height int) string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("Sign in")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(loginLabelStyle.Render("Username") + "\n")
	b.WriteString(f.username.View() + "\n\n")
	b.WriteString(loginLabelStyle.Render("Password") + "\n")
	b.WriteString(f.password.View() + "\n")
	if f.busy {
		b.WriteString("\n" + helpDimStyle.Render("Signing in..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + loginErrStyle.Render(f.errMsg))
	}
	b.WriteString("\n\n" + helpDimStyle.Render("tab switch field  enter submit  esc cancel"))

	card := loginCardStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
