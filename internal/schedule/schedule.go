// Package schedule is the calendar derivation engine: pure functions that
// turn fetched availability and appointment data into the view model the
// dashboard renders. Nothing here performs I/O; "now" is always a parameter.
package schedule

import (
	"time"

	"github.com/rafaloh/agendesk/pkg/domain"
)

// IsWeekend reports whether the weekday is Saturday or Sunday.
func IsWeekend(w time.Weekday) bool {
	return w == time.Saturday || w == time.Sunday
}

// DisabledDays returns the set of day numbers that cannot be selected in the
// viewed month: weekends unconditionally, plus every day the availability
// data marks unavailable.
func DisabledDays(year int, month time.Month, loc *time.Location, availability []domain.DayAvailability) map[int]bool {
	disabled := make(map[int]bool)
	last := DaysIn(year, month, loc)
	for day := 1; day <= last; day++ {
		if IsWeekend(time.Date(year, month, day, 0, 0, 0, 0, loc).Weekday()) {
			disabled[day] = true
		}
	}
	for _, d := range availability {
		if !d.Available && d.Day >= 1 && d.Day <= last {
			disabled[d.Day] = true
		}
	}
	return disabled
}

// DisabledDates maps DisabledDays onto concrete dates in the viewed month,
// in ascending order.
func DisabledDates(year int, month time.Month, loc *time.Location, availability []domain.DayAvailability) []time.Time {
	disabled := DisabledDays(year, month, loc, availability)
	last := DaysIn(year, month, loc)
	var dates []time.Time
	for day := 1; day <= last; day++ {
		if disabled[day] {
			dates = append(dates, time.Date(year, month, day, 0, 0, 0, 0, loc))
		}
	}
	return dates
}

// CanSelect is the date-selection gate. Today is always selectable, even
// before the month's availability resolves. Any other day needs loaded
// availability marking it available, must not be a weekend, and must not sit
// in the caller's extra disabled set. A rejected selection is a no-op for
// the caller, not an error.
func CanSelect(date time.Time, now time.Time, availability []domain.DayAvailability, extraDisabled map[int]bool) bool {
	if SameDay(date, now) {
		return true
	}
	if IsWeekend(date.Weekday()) || extraDisabled[date.Day()] {
		return false
	}
	for _, d := range availability {
		if d.Day == date.Day() {
			return d.Available
		}
	}
	return false
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether date is the current day in local terms.
func IsToday(date, now time.Time) bool {
	return SameDay(date, now)
}

// Partition splits appointments at noon: local start hour < 12 is morning,
// the rest afternoon. Fetch order is preserved; the server already sorts
// chronologically and the engine never re-sorts.
func Partition(appointments []domain.Appointment) (morning, afternoon []domain.Appointment) {
	for _, a := range appointments {
		if a.Date.Hour() < 12 {
			morning = append(morning, a)
		} else {
			afternoon = append(afternoon, a)
		}
	}
	return morning, afternoon
}

// Next returns the first appointment, in existing order, starting strictly
// after now. Nil when none qualifies. Callers must pass a live "now" on each
// recompute rather than a cached instant.
func Next(appointments []domain.Appointment, now time.Time) *domain.Appointment {
	for i := range appointments {
		if appointments[i].Date.After(now) {
			return &appointments[i]
		}
	}
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
