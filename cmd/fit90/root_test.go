package fit90

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd drives the real command tree against a throwaway database.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCommandLifecycle(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "fit90.db")
	db := func(args ...string) []string {
		return append(args, "--db", dbFile)
	}

	out, err := runCmd(t, db("status")...)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Setup complete:  false") {
		t.Fatalf("expected fresh database to report no setup, got:\n%s", out)
	}

	// Guarded commands refuse to run before setup.
	if _, err := runCmd(t, db("weight", "add", "82.5")...); err == nil {
		t.Fatalf("expected weight add to fail before setup")
	}

	out, err = runCmd(t, db("setup",
		"--name", "Alex",
		"--weight", "82.5",
		"--goal-weight", "75",
		"--height", "180",
		"--age", "30",
		"--gender", "other",
		"--start", "2024-03-01",
		"--pin", "1234",
	)...)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !strings.Contains(out, "Welcome Alex!") {
		t.Fatalf("unexpected setup output:\n%s", out)
	}

	if _, err := runCmd(t, db("setup",
		"--name", "Alex", "--weight", "82.5", "--goal-weight", "75",
		"--height", "180", "--age", "30", "--gender", "other", "--pin", "1234",
	)...); err == nil {
		t.Fatalf("expected second setup to fail")
	}

	out, err = runCmd(t, db("workout", "add", "--name", "Push Day", "--day", "1")...)
	if err != nil {
		t.Fatalf("workout add: %v", err)
	}
	if !strings.Contains(out, "Added workout Push Day") {
		t.Fatalf("unexpected workout add output:\n%s", out)
	}

	out, err = runCmd(t, db("workout", "list")...)
	if err != nil {
		t.Fatalf("workout list: %v", err)
	}
	if !strings.Contains(out, "Push Day") || !strings.Contains(out, "Mon") {
		t.Fatalf("unexpected workout list output:\n%s", out)
	}

	if _, err := runCmd(t, db("weight", "add", "82.5", "--date", "2024-03-01")...); err != nil {
		t.Fatalf("weight add: %v", err)
	}

	// The weight entry queued exactly one sync intent.
	out, err = runCmd(t, db("sync", "status")...)
	if err != nil {
		t.Fatalf("sync status: %v", err)
	}
	if !strings.Contains(out, "pending: 1") {
		t.Fatalf("unexpected sync status output:\n%s", out)
	}

	if _, err := runCmd(t, db("logout")...); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := runCmd(t, db("weight", "list")...); err == nil {
		t.Fatalf("expected weight list to fail after logout")
	}

	if _, err := runCmd(t, db("login", "--pin", "9999")...); err == nil {
		t.Fatalf("expected login with wrong pin to fail")
	}
	if _, err := runCmd(t, db("login", "--pin", "1234")...); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, err = runCmd(t, db("weight", "list")...)
	if err != nil {
		t.Fatalf("weight list: %v", err)
	}
	if !strings.Contains(out, "Latest: 82.5 kg (2024-03-01)") {
		t.Fatalf("unexpected weight list output:\n%s", out)
	}

	// Changing the pin retires the old one.
	if _, err := runCmd(t, db("pin", "update", "--old", "1234", "--new", "5678")...); err != nil {
		t.Fatalf("pin update: %v", err)
	}
	if _, err := runCmd(t, db("logout")...); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := runCmd(t, db("login", "--pin", "1234")...); err == nil {
		t.Fatalf("expected old pin to be rejected")
	}
	if _, err := runCmd(t, db("login", "--pin", "5678")...); err != nil {
		t.Fatalf("login with new pin: %v", err)
	}
}
