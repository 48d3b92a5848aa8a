package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rafaloh/agendesk/pkg/client"
	"github.com/rafaloh/agendesk/pkg/domain"
)

// ErrNotAuthenticated is returned by operations that require a signed-in
// session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Manager is the in-memory authority for the current session. It moves
// between two states, unauthenticated and authenticated, and keeps the
// store, the client's token binding and its subscribers in step on every
// transition.
type Manager struct {
	store  *Store
	client *client.Client

	mu      sync.RWMutex
	session *domain.Session
	subs    map[int]func(domain.Session, bool)
	nextSub int
}

// NewManager creates a manager over the given store and API client.
func NewManager(store *Store, c *client.Client) *Manager {
	return &Manager{
		store:  store,
		client: c,
		subs:   make(map[int]func(domain.Session, bool)),
	}
}

// Initialize attempts to restore a persisted session. On success the client
// token is primed and the manager starts authenticated. Absent or corrupt
// persisted state leaves it unauthenticated; no error either way.
func (m *Manager) Initialize() bool {
	token, user, ok := m.store.Load()
	if !ok {
		return false
	}
	m.mu.Lock()
	m.session = &domain.Session{Token: token, User: user}
	m.mu.Unlock()
	m.client.SetToken(token)
	m.notify()
	return true
}

// Current returns a copy of the session and whether one is active.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return domain.Session{}, false
	}
	return *m.session, true
}

// SignIn exchanges credentials for a session, persists it and primes the
// transport binding. On failure the manager stays in its previous state and
// the error propagates to the caller; no retry happens at this layer.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	s, err := m.client.CreateSession(ctx, email, password)
	if err != nil {
		return fmt.Errorf("session.SignIn: %w", err)
	}
	if err := m.store.Save(s.Token, s.User); err != nil {
		return fmt.Errorf("session.SignIn: persist: %w", err)
	}
	m.mu.Lock()
	m.session = &domain.Session{Token: s.Token, User: s.User}
	m.mu.Unlock()
	m.client.SetToken(s.Token)
	m.notify()
	return nil
}

// SignOut clears the store, the transport binding and the in-memory session.
// Calling it while already signed out is a no-op.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	wasAuthenticated := m.session != nil
	m.session = nil
	m.mu.Unlock()

	if !wasAuthenticated {
		return nil
	}
	m.client.ClearToken()
	err := m.store.Clear()
	m.notify()
	return err
}

// UpdateProfile sends the update, then replaces the in-memory and persisted
// profile while preserving the existing token. Requires an authenticated
// session.
func (m *Manager) UpdateProfile(ctx context.Context, req client.UpdateProfileRequest) error {
	m.mu.RLock()
	authenticated := m.session != nil
	m.mu.RUnlock()
	if !authenticated {
		return ErrNotAuthenticated
	}

	updated, err := m.client.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("session.UpdateProfile: %w", err)
	}

	m.mu.Lock()
	if m.session == nil {
		// Signed out while the request was in flight; drop the result.
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	token := m.session.Token
	m.session.User = *updated
	m.mu.Unlock()

	if err := m.store.Save(token, *updated); err != nil {
		return fmt.Errorf("session.UpdateProfile: persist: %w", err)
	}
	m.notify()
	return nil
}

// Subscribe registers fn to run after every state transition. It fires
// immediately with the current state and returns an unsubscribe func.
func (m *Manager) Subscribe(fn func(s domain.Session, authenticated bool)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	current := m.session
	m.mu.Unlock()

	if current != nil {
		fn(*current, true)
	} else {
		fn(domain.Session{}, false)
	}
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify() {
	m.mu.RLock()
	current := m.session
	fns := make([]func(domain.Session, bool), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		if current != nil {
			fn(*current, true)
		} else {
			fn(domain.Session{}, false)
		}
	}
}
