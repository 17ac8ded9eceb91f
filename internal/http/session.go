package http

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager issues and resolves opaque bearer tokens. Sessions live only
// in process memory; the persisted snapshot keeps a single current-user
// pointer and a restart simply requires clients to log in again.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
	tokenGen func() string
}

type session struct {
	userID    string
	expiresAt time.Time
}

// Session describes an issued token.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// NewSessionManager builds a manager with the given token lifetime. A
// non-positive ttl falls back to 24 hours.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
		tokenGen: uuid.NewString,
	}
}

// NewSessionManagerWithClock is the test hook variant with injectable time and
// token sources.
func NewSessionManagerWithClock(ttl time.Duration, now func() time.Time, tokenGen func() string) *SessionManager {
	m := NewSessionManager(ttl)
	if now != nil {
		m.now = now
	}
	if tokenGen != nil {
		m.tokenGen = tokenGen
	}
	return m
}

// Issue creates a new session for the given user.
func (m *SessionManager) Issue(userID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.tokenGen()
	expires := m.now().Add(m.ttl)
	m.sessions[token] = session{userID: userID, expiresAt: expires}
	return Session{Token: token, UserID: userID, ExpiresAt: expires}
}

// Resolve returns the user a live token belongs to. Expired tokens are removed
// on access.
func (m *SessionManager) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return "", false
	}
	if !m.now().Before(s.expiresAt) {
		delete(m.sessions, token)
		return "", false
	}
	return s.userID, true
}

// Revoke drops a single token. Revoking an unknown token is a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// RevokeUser drops every session belonging to the given user, for example
// after the account has been deleted.
func (m *SessionManager) RevokeUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.userID == userID {
			delete(m.sessions, token)
		}
	}
}
