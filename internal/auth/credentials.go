package auth

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func HasCredentials(db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM auth_credentials`).Scan(&count); err != nil {
		return false, fmt.Errorf("count credentials: %w", err)
	}
	return count > 0, nil
}

// CreateCredentials derives a fresh salt and hash for the PIN and
// replaces whatever credential row exists. A hard reset, not an update:
// the clear and insert commit together.
func CreateCredentials(db *sql.DB, pin string) error {
	if !ValidPin(pin) {
		return fmt.Errorf("pin must be 4 to 6 digits")
	}
	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	pinHash, err := HashPin(pin, salt)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin credentials tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM auth_credentials`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear credentials: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO auth_credentials(id, pin_hash, salt, created_at)
VALUES(?, ?, ?, ?)
`, uuid.NewString(), pinHash, salt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert credentials: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit credentials tx: %w", err)
	}
	return nil
}

// VerifyCredentials returns false, not an error, on a wrong PIN or when
// no credentials exist.
func VerifyCredentials(db *sql.DB, pin string) (bool, error) {
	var pinHash, salt string
	err := db.QueryRow(`SELECT pin_hash, salt FROM auth_credentials LIMIT 1`).Scan(&pinHash, &salt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load credentials: %w", err)
	}
	return VerifyPin(pin, pinHash, salt)
}

// UpdatePin verifies the old PIN first; on mismatch it returns false
// without touching the stored credential.
func UpdatePin(db *sql.DB, oldPin, newPin string) (bool, error) {
	ok, err := VerifyCredentials(db, oldPin)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := CreateCredentials(db, newPin); err != nil {
		return false, err
	}
	return true, nil
}
