package domain

import "github.com/google/uuid"

// Profile represents the authenticated provider's account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}
