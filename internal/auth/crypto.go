package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Stored credentials are only verifiable while these
// stay exactly as they are; changing any of them invalidates every PIN
// hashed before the change.
const (
	saltBytes      = 16
	hashIterations = 100000
	hashKeyBytes   = 32
	tokenBytes     = 32
)

var pinPattern = regexp.MustCompile(`^[0-9]{4,6}$`)

// ValidPin reports whether the PIN is 4 to 6 decimal digits. Checked
// before any hashing happens.
func ValidPin(pin string) bool {
	return pinPattern.MatchString(pin)
}

func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPin derives a 256-bit key from the PIN with PBKDF2-SHA256 over the
// hex-decoded salt, returned hex-encoded.
func HashPin(pin, salt string) (string, error) {
	saltRaw, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := pbkdf2.Key([]byte(pin), saltRaw, hashIterations, hashKeyBytes, sha256.New)
	return hex.EncodeToString(key), nil
}

// VerifyPin recomputes the hash with the stored salt and compares in
// constant time.
func VerifyPin(pin, storedHash, salt string) (bool, error) {
	computed, err := HashPin(pin, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}

// GenerateSessionToken returns a 256-bit random bearer token, hex-encoded.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
