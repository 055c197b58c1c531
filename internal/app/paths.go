package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName      = "fit90"
	dbFileName      = "fit90.db"
	sessionFileName = "session.json"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}

// SessionPathFor keeps the session slot next to the database so that
// --db overrides carry their own session state.
func SessionPathFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), sessionFileName)
}
