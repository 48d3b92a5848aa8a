package main

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rafaloh/agendesk/internal/browser"
	"github.com/rafaloh/agendesk/internal/config"
	"github.com/rafaloh/agendesk/internal/logging"
	"github.com/rafaloh/agendesk/internal/schedule"
	"github.com/rafaloh/agendesk/internal/session"
	"github.com/rafaloh/agendesk/internal/tui"
	"github.com/rafaloh/agendesk/pkg/client"
	"github.com/rafaloh/agendesk/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := session.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFile, cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck // flush on exit, best effort

	c := client.New(cfg.APIURL, "")
	if cfg.Timezone != "" {
		if loc, locErr := time.LoadLocation(cfg.Timezone); locErr == nil {
			c.SetLocation(loc)
		} else {
			logger.Warn("invalid timezone in config", zap.String("timezone", cfg.Timezone))
		}
	}

	store := session.NewStore(dir)
	mgr := session.NewManager(store, c)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("agendesk " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(mgr)
		case "forgot":
			return runForgot(c, os.Args[2:])
		case "reset":
			return runReset(c, os.Args[2:])
		case "web":
			return openWeb(cfg.APIURL)
		}
	}

	restored := mgr.Initialize()
	logger.Info("starting", zap.String("version", version), zap.Bool("session_restored", restored))

	// Every session transition lands in the log for postmortems.
	unsubscribe := mgr.Subscribe(func(_ domain.Session, authenticated bool) {
		logger.Info("session state", zap.Bool("authenticated", authenticated))
	})
	defer unsubscribe()

	app := tui.NewApp(c, mgr, logger, schedule.LocaleByCode(cfg.Locale))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(mgr *session.Manager) error {
	if !mgr.Initialize() {
		fmt.Println("Already signed out.")
		return nil
	}
	if err := mgr.SignOut(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func runForgot(c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: agendesk forgot <email>")
	}
	if err := c.ForgotPassword(context.Background(), args[0]); err != nil {
		return fmt.Errorf("request recovery email: %w", err)
	}
	fmt.Println("Recovery email sent. Check your inbox for the reset token.")
	return nil
}

func runReset(c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: agendesk reset <token>")
	}
	token := args[0]

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("New password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Print("Confirm password: ")
	confirmation, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	confirmation = strings.TrimRight(confirmation, "\r\n")
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if password != confirmation {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.ResetPassword(context.Background(), token, password); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	fmt.Println("Password updated. Sign in with your new password.")
	return nil
}

// openWeb opens the platform's web dashboard: the API host minus its "api."
// prefix, e.g. api.agendesk.app -> agendesk.app.
func openWeb(apiURL string) error {
	u, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("parse API URL: %w", err)
	}
	host := u.Hostname()
	if strings.HasPrefix(host, "api.") {
		u.Host = strings.TrimPrefix(host, "api.")
		if u.Port() != "" {
			u.Host += ":" + u.Port()
		}
	}
	webURL := u.String()
	if err := browser.Open(webURL); err != nil {
		fmt.Println(webURL)
	}
	return nil
}
