package auth_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/auth"
	"github.com/felipesobrinho-spec/fitness-90-day-tracker2/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fit90.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func TestCreateCredentialsReplacesExisting(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	has, err := auth.HasCredentials(sqldb)
	if err != nil {
		t.Fatalf("has credentials: %v", err)
	}
	if has {
		t.Fatalf("expected no credentials on a fresh store")
	}

	if err := auth.CreateCredentials(sqldb, "1234"); err != nil {
		t.Fatalf("create credentials: %v", err)
	}
	if err := auth.CreateCredentials(sqldb, "0000"); err != nil {
		t.Fatalf("recreate credentials: %v", err)
	}

	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM auth_credentials`).Scan(&count); err != nil {
		t.Fatalf("count credentials: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one credential row, got %d", count)
	}

	// Only the latest pin verifies.
	ok, err := auth.VerifyCredentials(sqldb, "1234")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if ok {
		t.Fatalf("replaced pin still verifies")
	}
	ok, err = auth.VerifyCredentials(sqldb, "0000")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if !ok {
		t.Fatalf("current pin does not verify")
	}
}

func TestCreateCredentialsRejectsBadPin(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	for _, pin := range []string{"", "12", "1234567", "abcd"} {
		if err := auth.CreateCredentials(sqldb, pin); err == nil {
			t.Fatalf("expected pin %q to be rejected", pin)
		}
	}
}

func TestVerifyCredentialsWithoutAny(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	ok, err := auth.VerifyCredentials(sqldb, "1234")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if ok {
		t.Fatalf("verification passed with no stored credentials")
	}
}

func TestUpdatePin(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := auth.CreateCredentials(sqldb, "1234"); err != nil {
		t.Fatalf("create credentials: %v", err)
	}

	ok, err := auth.UpdatePin(sqldb, "9999", "5678")
	if err != nil {
		t.Fatalf("update pin: %v", err)
	}
	if ok {
		t.Fatalf("update with wrong old pin succeeded")
	}
	// Old pin untouched after the failed attempt.
	ok, err = auth.VerifyCredentials(sqldb, "1234")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if !ok {
		t.Fatalf("old pin lost after failed update")
	}

	ok, err = auth.UpdatePin(sqldb, "1234", "5678")
	if err != nil {
		t.Fatalf("update pin: %v", err)
	}
	if !ok {
		t.Fatalf("update with correct old pin failed")
	}
	ok, err = auth.VerifyCredentials(sqldb, "5678")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if !ok {
		t.Fatalf("new pin does not verify")
	}
}
