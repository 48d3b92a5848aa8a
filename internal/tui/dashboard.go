package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rafaloh/agendesk/internal/schedule"
	"github.com/rafaloh/agendesk/pkg/client"
	"github.com/rafaloh/agendesk/pkg/domain"
)

// clockTickInterval is how often "now"-dependent derivations (next
// appointment, today detection) are re-evaluated against the live clock.
const clockTickInterval = 30 * time.Second

type clockTickMsg time.Time

func clockTickCmd() tea.Cmd {
	return tea.Tick(clockTickInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// availabilityMsg carries a month-availability fetch result, tagged with the
// generation it was issued for.
type availabilityMsg struct {
	seq   int
	year  int
	month time.Month
	days  []domain.DayAvailability
	err   error
}

// appointmentsMsg carries a day-appointments fetch result, tagged with the
// generation it was issued for.
type appointmentsMsg struct {
	seq   int
	date  time.Time
	appts []domain.Appointment
	err   error
}

// derivedView is the recomputed view model: pure functions of the current
// inputs, rebuilt explicitly after every state transition so the renderer
// never sees half-updated state.
type derivedView struct {
	disabled     map[int]bool
	isToday      bool
	dateLabel    string
	weekdayLabel string
	morning      []domain.Appointment
	afternoon    []domain.Appointment
	next         *domain.Appointment
}

type dashboardModel struct {
	client *client.Client
	log    *zap.Logger
	locale schedule.Locale
	now    func() time.Time

	user domain.Profile

	// Viewed month (drives availability) and selected day (drives
	// appointments). Independent inputs, per the platform dashboard.
	viewYear  int
	viewMonth time.Month
	focusDay  int
	selected  time.Time

	// Availability is replaced wholesale per month; availYear/availMonth
	// record which month the applied data belongs to.
	availability []domain.DayAvailability
	availYear    int
	availMonth   time.Month
	availSeq     int

	appointments []domain.Appointment
	apptSeq      int

	loadingAvail bool
	loadingAppts bool
	errText      string

	derived derivedView

	width  int
	height int
}

func newDashboardModel(c *client.Client, log *zap.Logger, locale schedule.Locale, now func() time.Time) dashboardModel {
	return dashboardModel{client: c, log: log, locale: locale, now: now}
}

// setUser binds the authenticated provider and resets the calendar to today.
func (m *dashboardModel) setUser(user domain.Profile) {
	m.user = user
	today := m.now()
	m.viewYear, m.viewMonth = today.Year(), today.Month()
	m.focusDay = today.Day()
	m.selected = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	m.availability = nil
	m.appointments = nil
	m.errText = ""
	m.derive()
}

// start kicks off the initial fetches and the clock tick. Pointer receiver:
// the generation counters it bumps must stick to the caller's model.
func (m *dashboardModel) start() tea.Cmd {
	return tea.Batch(m.fetchAvailability(), m.fetchAppointments(), clockTickCmd())
}

func (m dashboardModel) location() *time.Location {
	return m.now().Location()
}

// monthAvailability returns the applied availability only when it belongs to
// the currently viewed month; anything else behaves as not-yet-loaded.
func (m dashboardModel) monthAvailability() []domain.DayAvailability {
	if m.availYear == m.viewYear && m.availMonth == m.viewMonth {
		return m.availability
	}
	return nil
}

// fetchAvailability issues a month-availability fetch keyed to the current
// (provider, year, month). Bumping availSeq first means any in-flight fetch
// for a superseded month lands with a stale tag and is discarded.
func (m *dashboardModel) fetchAvailability() tea.Cmd {
	m.availSeq++
	m.loadingAvail = true
	seq, year, month := m.availSeq, m.viewYear, m.viewMonth
	c, providerID := m.client, m.user.ID
	return func() tea.Msg {
		days, err := c.MonthAvailability(context.Background(), providerID, year, month)
		return availabilityMsg{seq: seq, year: year, month: month, days: days, err: err}
	}
}

// fetchAppointments issues a day-appointments fetch keyed to the selected
// date, with the same generation-tag staleness rule.
func (m *dashboardModel) fetchAppointments() tea.Cmd {
	m.apptSeq++
	m.loadingAppts = true
	seq, date := m.apptSeq, m.selected
	c := m.client
	return func() tea.Msg {
		appts, err := c.DayAppointments(context.Background(), date.Year(), date.Month(), date.Day())
		return appointmentsMsg{seq: seq, date: date, appts: appts, err: err}
	}
}

// derive rebuilds the derived view from the current inputs. Called after
// every state transition; cheap enough that memoization would buy nothing.
func (m *dashboardModel) derive() {
	now := m.now()
	m.derived = derivedView{
		disabled:     schedule.DisabledDays(m.viewYear, m.viewMonth, m.location(), m.monthAvailability()),
		isToday:      schedule.IsToday(m.selected, now),
		dateLabel:    m.locale.DateLabel(m.selected),
		weekdayLabel: m.locale.WeekdayLabel(m.selected),
	}
	m.derived.morning, m.derived.afternoon = schedule.Partition(m.appointments)
	m.derived.next = schedule.Next(m.appointments, now)
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case availabilityMsg:
		if msg.seq != m.availSeq {
			// Response for a superseded (provider, year, month); drop it.
			return m, nil
		}
		m.loadingAvail = false
		if msg.err != nil {
			// Prior availability stays applied; report and move on.
			m.errText = "could not load availability"
			m.log.Warn("availability fetch failed",
				zap.Int("year", msg.year), zap.Int("month", int(msg.month)), zap.Error(msg.err))
			m.derive()
			return m, nil
		}
		m.availability = msg.days
		m.availYear, m.availMonth = msg.year, msg.month
		m.errText = ""
		m.derive()
		return m, nil

	case appointmentsMsg:
		if msg.seq != m.apptSeq {
			return m, nil
		}
		m.loadingAppts = false
		if msg.err != nil {
			m.errText = "could not load appointments"
			m.log.Warn("appointments fetch failed",
				zap.Time("date", msg.date), zap.Error(msg.err))
			m.derive()
			return m, nil
		}
		// Whole-set replacement for the selected day.
		m.appointments = msg.appts
		m.errText = ""
		m.derive()
		return m, nil

	case clockTickMsg:
		m.derive()
		return m, clockTickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveFocus(-1)
	case "right", "l":
		m.moveFocus(1)
	case "up", "k":
		m.moveFocus(-7)
	case "down", "j":
		m.moveFocus(7)
	case "n":
		cmd := m.shiftMonth(1)
		return m, cmd
	case "p":
		cmd := m.shiftMonth(-1)
		return m, cmd
	case "t":
		cmd := m.jumpToday()
		return m, cmd
	case "enter", " ":
		cmd := m.selectFocused()
		return m, cmd
	case "r":
		availCmd := m.fetchAvailability()
		apptCmd := m.fetchAppointments()
		return m, tea.Batch(availCmd, apptCmd)
	case "c":
		m.copySelectedDay()
	}
	return m, nil
}

// moveFocus moves the calendar cursor within the viewed month. Moving the
// cursor does not change the selection; enter does, through the gate.
func (m *dashboardModel) moveFocus(delta int) {
	day := m.focusDay + delta
	last := schedule.DaysIn(m.viewYear, m.viewMonth, m.location())
	if day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}
	m.focusDay = day
}

func (m *dashboardModel) shiftMonth(delta int) tea.Cmd {
	t := time.Date(m.viewYear, m.viewMonth, 1, 0, 0, 0, 0, m.location()).AddDate(0, delta, 0)
	m.viewYear, m.viewMonth = t.Year(), t.Month()
	if last := schedule.DaysIn(m.viewYear, m.viewMonth, m.location()); m.focusDay > last {
		m.focusDay = last
	}
	m.derive()
	return m.fetchAvailability()
}

func (m *dashboardModel) jumpToday() tea.Cmd {
	today := m.now()
	monthChanged := today.Year() != m.viewYear || today.Month() != m.viewMonth
	m.viewYear, m.viewMonth = today.Year(), today.Month()
	m.focusDay = today.Day()
	m.selected = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	m.derive()
	apptCmd := m.fetchAppointments()
	if monthChanged {
		return tea.Batch(m.fetchAvailability(), apptCmd)
	}
	return apptCmd
}

// selectFocused applies the date-selection gate: the focused day becomes the
// selected date only if it is available and not disabled. A rejected
// selection is a silent no-op.
func (m *dashboardModel) selectFocused() tea.Cmd {
	date := time.Date(m.viewYear, m.viewMonth, m.focusDay, 0, 0, 0, 0, m.location())
	if !schedule.CanSelect(date, m.now(), m.monthAvailability(), nil) {
		return nil
	}
	if schedule.SameDay(date, m.selected) {
		return nil
	}
	m.selected = date
	m.derive()
	return m.fetchAppointments()
}

// copySelectedDay puts a plain-text summary of the selected day on the
// clipboard.
func (m *dashboardModel) copySelectedDay() {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s\n", m.derived.dateLabel, m.derived.weekdayLabel)
	for _, a := range m.appointments {
		fmt.Fprintf(&b, "%s  %s\n", a.HourLabel, a.Client.Name)
	}
	if len(m.appointments) == 0 {
		b.WriteString("no appointments\n")
	}
	clipboard.WriteAll(b.String()) //nolint:errcheck // best-effort copy
}

func (m dashboardModel) View() string {
	left := m.renderAppointments()
	right := m.renderCalendar()

	leftWidth := m.width - lipgloss.Width(right) - 4
	if leftWidth < 30 {
		// Narrow terminal: stack vertically.
		return left + "\n" + right
	}
	leftBox := lipgloss.NewStyle().Width(leftWidth).Render(left)
	return lipgloss.JoinHorizontal(lipgloss.Top, " "+leftBox, "  "+right)
}

func (m dashboardModel) renderAppointments() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Schedule") + "\n")
	dateLine := accentStyle.Render(m.derived.dateLabel) + dimStyle.Render(" | ") + accentStyle.Render(m.derived.weekdayLabel)
	if m.derived.isToday {
		dateLine = accentStyle.Render("Today") + dimStyle.Render(" | ") + dateLine
	}
	b.WriteString(dateLine + "\n\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n\n")
	}

	if m.loadingAppts && len(m.appointments) == 0 {
		b.WriteString(dimStyle.Render("loading appointments...") + "\n")
		return b.String()
	}

	if next := m.derived.next; next != nil && m.derived.isToday {
		b.WriteString(sectionHeaderStyle.Render("Next appointment") + "\n")
		b.WriteString("  " + nextBadgeStyle.Render("●") + " " +
			hourStyle.Render(next.HourLabel) + "  " +
			clientNameStyle.Render(next.Client.Name) + "\n\n")
	}

	b.WriteString(m.renderPartition("Morning", m.derived.morning))
	b.WriteString(m.renderPartition("Afternoon", m.derived.afternoon))

	if len(m.appointments) == 0 && !m.loadingAppts {
		b.WriteString(dimStyle.Render("no appointments on this day") + "\n")
	}
	return b.String()
}

func (m dashboardModel) renderPartition(label string, appts []domain.Appointment) string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render(label) + "\n")
	if len(appts) == 0 {
		b.WriteString("  " + dimStyle.Render("nothing booked") + "\n\n")
		return b.String()
	}
	for _, a := range appts {
		b.WriteString("  " + hourStyle.Render(a.HourLabel) + "  " +
			clientNameStyle.Render(truncStr(a.Client.Name, 32)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m dashboardModel) renderCalendar() string {
	const cellWidth = 3 // "%2d" + space
	loc := m.location()
	now := m.now()

	var b strings.Builder
	header := fmt.Sprintf("%s %d", m.locale.MonthName(m.viewMonth), m.viewYear)
	b.WriteString(centerLine(selectedStyle.Render(header), 7*cellWidth) + "\n")
	b.WriteString(weekHeaderStyle.Render(" Su Mo Tu We Th Fr Sa") + "\n")

	first := time.Date(m.viewYear, m.viewMonth, 1, 0, 0, 0, 0, loc)
	last := schedule.DaysIn(m.viewYear, m.viewMonth, loc)
	col := int(first.Weekday())
	b.WriteString(strings.Repeat(" ", col*cellWidth))

	for day := 1; day <= last; day++ {
		date := time.Date(m.viewYear, m.viewMonth, day, 0, 0, 0, 0, loc)
		cell := fmt.Sprintf("%2d", day)

		switch {
		case schedule.SameDay(date, m.selected):
			cell = daySelectedStyle.Render(cell)
		case day == m.focusDay:
			cell = dayFocusStyle.Render(cell)
		case m.derived.disabled[day]:
			cell = dayDisabledStyle.Render(cell)
		case schedule.SameDay(date, now):
			cell = accentStyle.Render(cell)
		default:
			cell = dayStyle.Render(cell)
		}

		b.WriteString(" " + cell)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	if m.loadingAvail {
		b.WriteString("\n" + dimStyle.Render("updating availability...") + "\n")
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("←↓↑→", "move") + "  " +
		helpEntry("enter", "select day") + "  " +
		helpEntry("n/p", "month") + "  " +
		helpEntry("t", "today") + "  " +
		helpEntry("r", "refresh") + "  " +
		helpEntry("c", "copy")
}
