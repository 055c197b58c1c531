package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SessionDuration is the absolute lifetime of a minted session.
const SessionDuration = 24 * time.Hour

// Session is the local authorization gate: an opaque bearer token and an
// absolute expiry in epoch milliseconds. Nothing remote ever validates it.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (s Session) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

// SessionStore persists the session as a single JSON file outside the
// entity store. Last writer wins; there is no versioning.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns nil when no session file exists or it cannot be decoded;
// a corrupt slot is treated the same as an absent one.
func (st *SessionStore) Load() (*Session, error) {
	raw, err := os.ReadFile(st.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil
	}
	return &s, nil
}

func (st *SessionStore) Save(s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(st.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (st *SessionStore) Clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}
