package tui

import "github.com/charmbracelet/lipgloss"

// agendesk palette: warm amber accent over a dark slate base.
var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3a4050"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f4ede8"))

	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9000"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9000"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999591"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999591"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3a4050"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff9000"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a4050")).
				Italic(true)

	// Calendar grid.
	weekHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999591"))

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec"))

	dayDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a4050"))

	daySelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#232129")).
				Background(lipgloss.Color("#ff9000"))

	dayFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9000"))

	// Appointment list.
	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9000"))

	clientNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f4ede8"))

	nextBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9000"))
)

// helpEntry renders a "key label" pair for the bottom help line.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
