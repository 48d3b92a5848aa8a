package tui

import (
	"context"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rafaloh/agendesk/internal/session"
	"github.com/rafaloh/agendesk/pkg/client"
)

type signinField int

const (
	fieldEmail signinField = iota
	fieldPassword
	numSigninFields
)

// signedInMsg carries the outcome of a sign-in attempt.
type signedInMsg struct {
	err error
}

type signinModel struct {
	sessions *session.Manager

	fields     [numSigninFields]string
	focus      signinField
	submitting bool
	errText    string
}

func newSigninModel(mgr *session.Manager) signinModel {
	return signinModel{sessions: mgr}
}

func (m signinModel) Update(msg tea.Msg) (signinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsAuthRejected(msg.err) {
				m.errText = "invalid email or password"
			} else {
				m.errText = "could not reach the server, try again"
			}
			m.fields[fieldPassword] = ""
			m.focus = fieldPassword
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m signinModel) updateKeys(msg tea.KeyMsg) (signinModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numSigninFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numSigninFields) % numSigninFields
	case "enter":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	default:
		m.errText = ""
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m signinModel) submit() (signinModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]

	if _, err := mail.ParseAddress(email); err != nil {
		m.errText = "enter a valid email"
		m.focus = fieldEmail
		return m, nil
	}
	if password == "" {
		m.errText = "password is required"
		m.focus = fieldPassword
		return m, nil
	}

	m.submitting = true
	m.errText = ""
	mgr := m.sessions
	return m, func() tea.Msg {
		return signedInMsg{err: mgr.SignIn(context.Background(), email, password)}
	}
}

func (m signinModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Sign in") + "\n\n")

	labels := [numSigninFields]string{"email", "password"}
	for i := signinField(0); i < numSigninFields; i++ {
		cursor := " "
		style := dimStyle
		if i == m.focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}
		value := m.fields[i]
		if i == fieldPassword {
			value = maskString(value)
		}
		if value == "" && i != m.focus {
			value = inputPlaceholderStyle.Render("...")
		}
		if i == m.focus {
			value += accentStyle.Render("█")
		}
		b.WriteString(" " + cursor + " " + style.Render(labels[i]) + ": " + value + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.errText != "":
		b.WriteString(" " + errorStyle.Render(m.errText))
	default:
		b.WriteString(" " + dimStyle.Render("forgot your password? run: agendesk forgot <email>"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m signinModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " +
		helpEntry("enter", "sign in") + "  " +
		helpEntry("ctrl+c", "quit")
}
