package schedule

import (
	"testing"
	"time"

	"github.com/rafaloh/agendesk/pkg/domain"
)

// September 2026: the 1st is a Tuesday; 5/6, 12/13, 19/20, 26/27 are weekends.

func TestDisabledDays_WeekendsAlways(t *testing.T) {
	disabled := DisabledDays(2026, time.September, time.UTC, nil)
	for _, day := range []int{5, 6, 12, 13, 19, 20, 26, 27} {
		if !disabled[day] {
			t.Errorf("day %d is a weekend, want disabled", day)
		}
	}
	if disabled[7] {
		t.Error("Monday the 7th disabled with no availability data")
	}
}

func TestDisabledDays_Unavailable(t *testing.T) {
	availability := []domain.DayAvailability{
		{Day: 7, Available: false},
		{Day: 8, Available: true},
		{Day: 40, Available: false}, // out of range, ignored
	}
	disabled := DisabledDays(2026, time.September, time.UTC, availability)
	if !disabled[7] {
		t.Error("fully booked day 7 not disabled")
	}
	if disabled[8] {
		t.Error("open day 8 disabled")
	}
	if disabled[40] {
		t.Error("out-of-range day leaked into the disabled set")
	}
}

func TestDisabledDates_Ascending(t *testing.T) {
	dates := DisabledDates(2026, time.September, time.UTC, []domain.DayAvailability{{Day: 1, Available: false}})
	if len(dates) == 0 {
		t.Fatal("no disabled dates")
	}
	if dates[0].Day() != 1 {
		t.Errorf("first disabled date = %v, want the 1st", dates[0])
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Errorf("dates out of order at %d: %v then %v", i, dates[i-1], dates[i])
		}
	}
}

func TestCanSelect(t *testing.T) {
	now := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	availability := []domain.DayAvailability{
		{Day: 8, Available: true},
		{Day: 9, Available: false},
	}
	day := func(d int) time.Time {
		return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
	}

	if !CanSelect(day(8), now, availability, nil) {
		t.Error("open weekday rejected")
	}
	if CanSelect(day(9), now, availability, nil) {
		t.Error("fully booked day accepted")
	}
	if CanSelect(day(12), now, availability, nil) {
		t.Error("Saturday accepted")
	}
	if CanSelect(day(10), now, availability, nil) {
		t.Error("day with no availability entry accepted")
	}
	if CanSelect(day(8), now, availability, map[int]bool{8: true}) {
		t.Error("extra-disabled day accepted")
	}
}

func TestCanSelect_TodayBeforeAvailabilityLoads(t *testing.T) {
	now := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	if !CanSelect(today, now, nil, nil) {
		t.Error("today rejected with nil availability")
	}
	// Even marked unavailable, today stays selectable.
	if !CanSelect(today, now, []domain.DayAvailability{{Day: 7, Available: false}}, nil) {
		t.Error("today rejected when marked unavailable")
	}
}

func TestPartition(t *testing.T) {
	day := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) domain.Appointment {
		return domain.Appointment{Date: day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)}
	}
	appts := []domain.Appointment{at(9, 0), at(11, 59), at(12, 0), at(14, 0)}

	morning, afternoon := Partition(appts)
	if len(morning) != 2 {
		t.Fatalf("got %d morning appointments, want 2", len(morning))
	}
	if len(afternoon) != 2 {
		t.Fatalf("got %d afternoon appointments, want 2", len(afternoon))
	}
	if morning[1].Date.Hour() != 11 || morning[1].Date.Minute() != 59 {
		t.Errorf("11:59 not in morning: %v", morning)
	}
	if afternoon[0].Date.Hour() != 12 {
		t.Errorf("12:00 not first in afternoon: %v", afternoon)
	}
}

func TestPartition_Empty(t *testing.T) {
	morning, afternoon := Partition(nil)
	if len(morning) != 0 || len(afternoon) != 0 {
		t.Errorf("Partition(nil) = (%v, %v), want empty", morning, afternoon)
	}
}

func TestNext(t *testing.T) {
	day := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	appts := []domain.Appointment{
		{Date: day.Add(9 * time.Hour), HourLabel: "09:00"},
		{Date: day.Add(13 * time.Hour), HourLabel: "13:00"},
	}

	next := Next(appts, day.Add(10*time.Hour))
	if next == nil || next.HourLabel != "13:00" {
		t.Errorf("Next at 10:00 = %v, want 13:00", next)
	}

	// Strictly after: an appointment starting exactly now is not "next".
	next = Next(appts, day.Add(13*time.Hour))
	if next != nil {
		t.Errorf("Next at exactly 13:00 = %v, want nil", next)
	}

	if Next(appts, day.Add(15*time.Hour)) != nil {
		t.Error("Next after the last appointment should be nil")
	}
	if Next(nil, day) != nil {
		t.Error("Next(nil) should be nil")
	}
}

func TestIsTodayAndSameDay(t *testing.T) {
	now := time.Date(2026, time.September, 7, 23, 30, 0, 0, time.UTC)
	sameDay := time.Date(2026, time.September, 7, 0, 1, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.September, 8, 0, 1, 0, 0, time.UTC)

	if !IsToday(sameDay, now) {
		t.Error("IsToday(same calendar day) = false")
	}
	if IsToday(nextDay, now) {
		t.Error("IsToday(next day) = true")
	}

	// Comparison happens in the first argument's location.
	brt := time.FixedZone("BRT", -3*60*60)
	evening := time.Date(2026, time.September, 7, 20, 0, 0, 0, brt)
	utcNow := time.Date(2026, time.September, 8, 1, 0, 0, 0, time.UTC) // Sept 7, 22:00 in BRT
	if !SameDay(evening, utcNow) {
		t.Error("SameDay should compare in the first argument's location")
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.September, 30},
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month, time.UTC); got != tc.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestLocaleLabels(t *testing.T) {
	date := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC) // a Sunday

	if got := EnUS.DateLabel(date); got != "Day 06 of September" {
		t.Errorf("EnUS.DateLabel = %q, want %q", got, "Day 06 of September")
	}
	if got := EnUS.WeekdayLabel(date); got != "Sunday" {
		t.Errorf("EnUS.WeekdayLabel = %q, want %q", got, "Sunday")
	}
	if got := PtBR.DateLabel(date); got != "Dia 06 de setembro" {
		t.Errorf("PtBR.DateLabel = %q, want %q", got, "Dia 06 de setembro")
	}
	if got := PtBR.WeekdayLabel(date); got != "domingo" {
		t.Errorf("PtBR.WeekdayLabel = %q, want %q", got, "domingo")
	}
}

func TestLocaleByCode(t *testing.T) {
	if LocaleByCode("pt-BR").Code != "pt-BR" {
		t.Error("pt-BR did not resolve")
	}
	if LocaleByCode("PT_br").Code != "pt-BR" {
		t.Error("case-insensitive pt_BR did not resolve")
	}
	if LocaleByCode("fr-FR").Code != "en-US" {
		t.Error("unknown locale should fall back to en-US")
	}
	if LocaleByCode("").Code != "en-US" {
		t.Error("empty locale should fall back to en-US")
	}
}
