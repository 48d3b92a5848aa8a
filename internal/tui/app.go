package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rafaloh/agendesk/internal/schedule"
	"github.com/rafaloh/agendesk/internal/session"
	"github.com/rafaloh/agendesk/pkg/client"
)

type view int

const (
	viewSignIn view = iota
	viewDashboard
	viewProfile
)

// bootMsg kicks off the initial fetches from Update, where model mutations
// (the fetch generation counters) persist.
type bootMsg struct{}

// App is the root Bubbletea model.
type App struct {
	client   *client.Client
	sessions *session.Manager
	log      *zap.Logger
	now      func() time.Time

	view      view
	signin    signinModel
	dashboard dashboardModel
	profile   profileModel

	width  int
	height int
}

// NewApp wires the TUI over the session manager and API client. The app
// starts on the dashboard when a session was restored, otherwise on sign-in.
func NewApp(c *client.Client, mgr *session.Manager, log *zap.Logger, locale schedule.Locale) App {
	a := App{
		client:    c,
		sessions:  mgr,
		log:       log,
		now:       time.Now,
		signin:    newSigninModel(mgr),
		dashboard: newDashboardModel(c, log, locale, time.Now),
		profile:   newProfileModel(mgr),
	}
	if s, ok := mgr.Current(); ok {
		a.view = viewDashboard
		a.dashboard.setUser(s.User)
		a.profile.setProfile(s.User)
	}
	return a
}

func (a App) Init() tea.Cmd {
	return func() tea.Msg { return bootMsg{} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootMsg:
		if a.view == viewDashboard {
			return a, a.dashboard.start()
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + blank(1) + help(1).
		a.dashboard, _ = a.dashboard.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3})
		return a, nil

	case signedInMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.signin, cmd = a.signin.Update(msg)
			return a, cmd
		}
		s, ok := a.sessions.Current()
		if !ok {
			return a, nil
		}
		a.log.Info("signed in", zap.String("user", s.User.Email))
		a.dashboard.setUser(s.User)
		a.profile.setProfile(s.User)
		a.view = viewDashboard
		return a, a.dashboard.start()

	case profileSavedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		if msg.err == nil {
			if s, ok := a.sessions.Current(); ok {
				a.dashboard.user = s.User
			}
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == viewDashboard {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "e":
				a.profile.setProfile(a.dashboard.user)
				a.view = viewProfile
				return a, nil
			case "s":
				a.signOut()
				return a, nil
			}
		}
		if a.view == viewProfile && msg.String() == "esc" {
			a.view = viewDashboard
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewSignIn:
		a.signin, cmd = a.signin.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// signOut tears the session down and returns to the sign-in view. Safe to
// call repeatedly.
func (a *App) signOut() {
	if err := a.sessions.SignOut(); err != nil {
		a.log.Warn("sign-out cleanup failed", zap.Error(err))
	}
	a.signin = newSigninModel(a.sessions)
	a.view = viewSignIn
}

func (a App) View() string {
	logo := titleStyle.Render("A G E N D E S K")
	header := " " + logo
	if s, ok := a.sessions.Current(); ok && a.view != viewSignIn {
		who := dimStyle.Render("Welcome, ") + selectedStyle.Render(s.User.Name)
		gap := a.width - lipgloss.Width(header) - lipgloss.Width(who) - 1
		if gap < 1 {
			gap = 1
		}
		header += strings.Repeat(" ", gap) + who
	}

	var body, help string
	switch a.view {
	case viewSignIn:
		body = a.signin.View()
		help = " " + a.signin.helpKeys()
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + a.dashboard.helpKeys() + "  " +
			helpEntry("e", "profile") + "  " +
			helpEntry("s", "sign out") + "  " +
			helpEntry("q", "quit")
	case viewProfile:
		body = a.profile.View()
		help = " " + a.profile.helpKeys()
	}

	if a.height > 0 {
		body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	}
	return header + "\n\n" + body + "\n" + help
}
