package cli

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/herr"
)

// Session is one signed-in console session. Identity is an already
// resolved staff record; there are no credentials or tokens.
type Session struct {
	ID        uuid.UUID
	Actor     *staff.Staff
	StartedAt time.Time
	LastSeen  time.Time
}

// SessionManager tracks the active console session and expires it after
// a configurable idle period.
type SessionManager struct {
	idleTimeout time.Duration
	current     *Session
	now         func() time.Time
}

func NewSessionManager(idleTimeout time.Duration) *SessionManager {
	return &SessionManager{idleTimeout: idleTimeout, now: time.Now}
}

// Start opens a session for actor, replacing any existing one.
func (m *SessionManager) Start(actor *staff.Staff) *Session {
	now := m.now()
	m.current = &Session{
		ID:        uuid.New(),
		Actor:     actor,
		StartedAt: now,
		LastSeen:  now,
	}
	return m.current
}

// Actor returns the signed-in staff record, refreshing the idle clock.
// It fails Unauthorized when no session is active or the session idled
// out.
func (m *SessionManager) Actor() (*staff.Staff, error) {
	if m.current == nil {
		return nil, herr.Unauthorizedf("no active session")
	}
	now := m.now()
	if now.Sub(m.current.LastSeen) > m.idleTimeout {
		m.current = nil
		return nil, herr.Unauthorizedf("session expired, sign in again")
	}
	m.current.LastSeen = now
	return m.current.Actor, nil
}

// End closes the active session.
func (m *SessionManager) End() {
	m.current = nil
}

// Active reports whether a live session exists without refreshing it.
func (m *SessionManager) Active() bool {
	return m.current != nil && m.now().Sub(m.current.LastSeen) <= m.idleTimeout
}
