package auth_test

import (
	"testing"
	"time"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/auth"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/service"
)

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	store := newSessionStore(t)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := auth.NewManager(sqldb, store).WithClock(func() time.Time { return clock })

	st, err := m.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Authenticated || st.SetupComplete || st.HasCredentials {
		t.Fatalf("expected a blank slate, got %+v", st)
	}

	// Setup cannot finish before a profile exists.
	if err := m.CompleteSetup(); err == nil {
		t.Fatalf("expected setup to fail without a profile")
	}

	if _, err := service.CreateProfile(sqldb, service.CreateProfileInput{
		Name: "Alex", Weight: 82.5, GoalWeight: 75, Height: 180, Age: 30,
		Gender: "other", ProgramStartDate: "2024-03-01", ProgramDurationDays: 90, WaterGoalML: 2500,
	}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := auth.CreateCredentials(sqldb, "1234"); err != nil {
		t.Fatalf("create credentials: %v", err)
	}
	if err := m.CompleteSetup(); err != nil {
		t.Fatalf("complete setup: %v", err)
	}

	st, err = m.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.Authenticated || !st.SetupComplete || !st.HasCredentials {
		t.Fatalf("expected fully set up and authenticated, got %+v", st)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	st, err = m.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Authenticated {
		t.Fatalf("still authenticated after logout")
	}
	if !st.SetupComplete {
		t.Fatalf("logout should not undo setup")
	}
}

func TestManagerLogin(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	store := newSessionStore(t)
	m := auth.NewManager(sqldb, store)

	if err := auth.CreateCredentials(sqldb, "1234"); err != nil {
		t.Fatalf("create credentials: %v", err)
	}

	ok, err := m.Login("0000")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ok {
		t.Fatalf("wrong pin logged in")
	}
	s, err := store.Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s != nil {
		t.Fatalf("failed login minted a session")
	}

	ok, err = m.Login("1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !ok {
		t.Fatalf("correct pin rejected")
	}
	s, err = store.Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s == nil || s.Token == "" {
		t.Fatalf("expected minted session, got %+v", s)
	}
}

func TestManagerStatusClearsExpiredSession(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	store := newSessionStore(t)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := auth.NewManager(sqldb, store).WithClock(func() time.Time { return clock })

	if err := auth.CreateCredentials(sqldb, "1234"); err != nil {
		t.Fatalf("create credentials: %v", err)
	}
	ok, err := m.Login("1234")
	if err != nil || !ok {
		t.Fatalf("login: ok=%v err=%v", ok, err)
	}

	st, err := m.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.Authenticated {
		t.Fatalf("expected live session")
	}

	// Jump past the session lifetime: the session reads as absent and the
	// file is removed.
	clock = clock.Add(auth.SessionDuration + time.Minute)
	st, err = m.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Authenticated {
		t.Fatalf("expired session still authenticates")
	}
	s, err := store.Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s != nil {
		t.Fatalf("expired session file not cleared: %+v", s)
	}
}
