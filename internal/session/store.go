// Package session owns the authenticated session: durable persistence of the
// token/profile pair and the in-memory state machine observed by the views.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafaloh/agendesk/pkg/domain"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store persists the session pair under a single directory: the raw token in
// one file, the serialized profile in another. Both are written and removed
// together.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (created on first Save).
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns ~/.agendesk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agendesk"), nil
}

// Save durably writes the token and profile. Either both land or the pair is
// left in a state Load treats as absent.
func (s *Store) Save(token string, user domain.Profile) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
}

// Load restores the persisted pair. ok is false unless both files exist, the
// profile deserializes, and the token is not an already-expired JWT. Corrupt
// state is indistinguishable from absence; Load never fails hard.
func (s *Store) Load() (token string, user domain.Profile, ok bool) {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return "", domain.Profile{}, false
	}
	token = strings.TrimSpace(string(raw))
	if token == "" || tokenExpired(token, time.Now()) {
		return "", domain.Profile{}, false
	}

	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return "", domain.Profile{}, false
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return "", domain.Profile{}, false
	}
	return token, user, true
}

// Clear removes both files. Missing files are not an error.
func (s *Store) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// tokenExpired inspects the exp claim without verifying the signature (the
// backend is the authority; this only avoids restoring a session the next
// request would reject anyway). Tokens that don't parse as JWTs pass through
// untouched.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
