package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked slot on the provider's calendar, an immutable
// snapshot for a given (identity, day) fetch.
type Appointment struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	HourLabel string    `json:"hour_formatted"` // zero-padded 24h HH:mm, local time
	Client    Client    `json:"user"`
}

// Client is the person who booked the appointment.
type Client struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DayAvailability reports whether a single calendar day in the fetched
// month still has open slots.
type DayAvailability struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}
