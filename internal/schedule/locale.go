package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Locale supplies the month and weekday names used in the dashboard labels.
// The active locale is configuration, not a compile-time constant.
type Locale struct {
	Code      string
	dayFormat string // fmt pattern taking (day int, month string)
	months    [12]string
	weekdays  [7]string
}

// EnUS renders "Day 06 of September".
var EnUS = Locale{
	Code:      "en-US",
	dayFormat: "Day %02d of %s",
	months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	weekdays: [7]string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	},
}

// PtBR renders "Dia 06 de setembro", matching the platform's web dashboard.
var PtBR = Locale{
	Code:      "pt-BR",
	dayFormat: "Dia %02d de %s",
	months: [12]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	weekdays: [7]string{
		"domingo", "segunda-feira", "terça-feira", "quarta-feira",
		"quinta-feira", "sexta-feira", "sábado",
	},
}

// LocaleByCode resolves a configured locale code, defaulting to en-US.
func LocaleByCode(code string) Locale {
	switch strings.ToLower(code) {
	case "pt-br", "pt_br", "pt":
		return PtBR
	default:
		return EnUS
	}
}

// DateLabel renders the selected-date heading, e.g. "Day 06 of September".
func (l Locale) DateLabel(t time.Time) string {
	return fmt.Sprintf(l.dayFormat, t.Day(), l.MonthName(t.Month()))
}

// WeekdayLabel renders the full weekday name for t.
func (l Locale) WeekdayLabel(t time.Time) string {
	return l.weekdays[int(t.Weekday())]
}

// MonthName returns the locale's name for m.
func (l Locale) MonthName(m time.Month) string {
	return l.months[int(m)-1]
}
