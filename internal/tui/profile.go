package tui

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rafaloh/agendesk/internal/session"
	"github.com/rafaloh/agendesk/pkg/client"
	"github.com/rafaloh/agendesk/pkg/domain"
)

type profileField int

const (
	fieldName profileField = iota
	fieldProfileEmail
	fieldOldPassword
	fieldNewPassword
	numProfileFields
)

// profileSavedMsg carries the outcome of a profile update.
type profileSavedMsg struct {
	err error
}

type profileModel struct {
	sessions *session.Manager

	fields     [numProfileFields]string
	focus      profileField
	submitting bool
	errText    string
	statusMsg  string
}

func newProfileModel(mgr *session.Manager) profileModel {
	return profileModel{sessions: mgr}
}

// setProfile seeds the form from the current session profile.
func (m *profileModel) setProfile(p domain.Profile) {
	m.fields[fieldName] = p.Name
	m.fields[fieldProfileEmail] = p.Email
	m.fields[fieldOldPassword] = ""
	m.fields[fieldNewPassword] = ""
	m.focus = fieldName
	m.errText = ""
	m.statusMsg = ""
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, session.ErrNotAuthenticated):
				m.errText = "sign in first"
			case client.IsAuthRejected(msg.err):
				m.errText = "current password rejected"
			default:
				m.errText = "could not save profile, try again"
			}
			return m, nil
		}
		m.statusMsg = "profile updated"
		m.fields[fieldOldPassword] = ""
		m.fields[fieldNewPassword] = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numProfileFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numProfileFields) % numProfileFields
	case "enter":
		if m.focus == numProfileFields-1 {
			return m.submit()
		}
		m.focus++
	case "ctrl+s":
		return m.submit()
	default:
		m.errText = ""
		m.statusMsg = ""
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[fieldName])
	email := strings.TrimSpace(m.fields[fieldProfileEmail])
	oldPassword := m.fields[fieldOldPassword]
	newPassword := m.fields[fieldNewPassword]

	if name == "" {
		m.errText = "name is required"
		m.focus = fieldName
		return m, nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		m.errText = "enter a valid email"
		m.focus = fieldProfileEmail
		return m, nil
	}
	if newPassword != "" && oldPassword == "" {
		m.errText = "current password is required to set a new one"
		m.focus = fieldOldPassword
		return m, nil
	}

	m.submitting = true
	m.errText = ""
	req := client.UpdateProfileRequest{
		Name:        name,
		Email:       email,
		OldPassword: oldPassword,
		Password:    newPassword,
	}
	mgr := m.sessions
	return m, func() tea.Msg {
		return profileSavedMsg{err: mgr.UpdateProfile(context.Background(), req)}
	}
}

func (m profileModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("My profile") + "\n\n")

	labels := [numProfileFields]string{"name", "email", "current password", "new password"}
	for i := profileField(0); i < numProfileFields; i++ {
		cursor := " "
		style := dimStyle
		if i == m.focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}
		value := m.fields[i]
		if i == fieldOldPassword || i == fieldNewPassword {
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
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.errText != "":
		b.WriteString(" " + errorStyle.Render(m.errText))
	case m.statusMsg != "":
		b.WriteString(" " + successStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	return b.String()
}

func (m profileModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " +
		helpEntry("ctrl+s", "save") + "  " +
		helpEntry("esc", "back")
}
