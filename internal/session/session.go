package session

import (
	"context"
	"sync"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/checkout"
)

type User struct {
	ID    int64
	Email string
}

// AuthState is an explicit sum type consumed by exhaustive type switches,
// instead of nil checks scattered through handlers.
type AuthState interface {
	authState()
}

type LoggedOut struct{}

type LoggedIn struct {
	User  User
	Token string // raw bearer token, forwarded to the upstream payment API
}

func (LoggedOut) authState() {}
func (LoggedIn) authState()  {}

// Session carries everything checkout needs for one user: the cart store,
// the aggregator holding the current attempt and the submitter guarding
// single-flight submission. It replaces the original process-wide user
// singleton so multi-account use and tests stay tractable.
type Session struct {
	User       User
	Cart       *cart.Store
	Aggregator *checkout.Aggregator
	Submitter  *checkout.Submitter
}

// Loader builds a Session for a user on first sight, typically hydrating the
// cart from the local cache and restoring any unresolved checkout attempt.
type Loader interface {
	LoadSession(ctx context.Context, user User) (*Session, error)
}

// Manager hands out one Session per user, creating it lazily.
type Manager struct {
	mu       sync.Mutex
	loader   Loader
	sessions map[int64]*Session
}

func NewManager(loader Loader) *Manager {
	return &Manager{loader: loader, sessions: make(map[int64]*Session)}
}

func (m *Manager) Get(ctx context.Context, user User) (*Session, error) {
	m.mu.Lock()
	if sess, ok := m.sessions[user.ID]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	// Load outside the lock; a racing load for the same user keeps the first
	// stored session.
	sess, err := m.loader.LoadSession(ctx, user)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[user.ID]; ok {
		return existing, nil
	}
	m.sessions[user.ID] = sess
	return sess, nil
}

// Drop forgets a user's session, e.g. on logout.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
