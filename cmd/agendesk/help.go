package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff9000")).
		Bold(true).
		Render("A G E N D E S K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Your appointments, from the terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"agendesk", "Open the dashboard (interactive TUI)"},
		{"agendesk logout", "Clear your saved session"},
		{"agendesk forgot <email>", "Request a password recovery email"},
		{"agendesk reset <token>", "Set a new password with a recovery token"},
		{"agendesk web", "Open the web dashboard in your browser"},
		{"agendesk --version", "Show version"},
		{"agendesk help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}
	cfg := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).
		Render("Config: ~/.agendesk/config.yaml (AGENDESK_* env vars override)")
	fmt.Printf("\n  %s\n\n", cfg)
}
