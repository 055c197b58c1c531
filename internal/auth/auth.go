// Package auth holds the PIN credential lifecycle and the time-bounded
// local session that gates access to the rest of the application.
package auth

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

// Manager is the facade the command layer talks to. Credential state
// lives in the entity store; session state lives in the session file.
type Manager struct {
	db       *sql.DB
	sessions *SessionStore
	now      func() time.Time
}

func NewManager(db *sql.DB, sessions *SessionStore) *Manager {
	return &Manager{db: db, sessions: sessions, now: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

type Status struct {
	Authenticated  bool
	SetupComplete  bool
	HasCredentials bool
}

// Status reports the two independent gates: setup (a profile row exists)
// and authentication (a live session exists). An expired session counts
// as absent and is cleared on detection.
func (m *Manager) Status() (Status, error) {
	var st Status

	exists, err := service.ProfileExists(m.db)
	if err != nil {
		return st, err
	}
	st.SetupComplete = exists

	hasCreds, err := HasCredentials(m.db)
	if err != nil {
		return st, err
	}
	st.HasCredentials = hasCreds

	session, err := m.sessions.Load()
	if err != nil {
		return st, err
	}
	if session == nil {
		return st, nil
	}
	if session.ExpiredAt(m.now()) {
		if err := m.sessions.Clear(); err != nil {
			return st, err
		}
		return st, nil
	}
	st.Authenticated = true
	return st, nil
}

// Login verifies the PIN and mints a session on success. A wrong PIN is
// false, never an error.
func (m *Manager) Login(pin string) (bool, error) {
	ok, err := VerifyCredentials(m.db, pin)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return true, m.mintSession()
}

// Logout clears the session unconditionally.
func (m *Manager) Logout() error {
	return m.sessions.Clear()
}

// CompleteSetup mints a session without re-verifying the PIN. The setup
// flow stores a fresh PIN immediately before calling this, so the user
// has authenticated by supplying that PIN in the same invocation; no
// other caller exists.
func (m *Manager) CompleteSetup() error {
	exists, err := service.ProfileExists(m.db)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("setup is not complete: no profile exists")
	}
	return m.mintSession()
}

func (m *Manager) mintSession() error {
	token, err := GenerateSessionToken()
	if err != nil {
		return err
	}
	return m.sessions.Save(Session{
		Token:     token,
		ExpiresAt: m.now().Add(SessionDuration).UnixMilli(),
	})
}
