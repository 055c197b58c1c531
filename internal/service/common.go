package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// nowFunc is swapped in tests that pin the wall clock.
var nowFunc = time.Now

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

// ValidDate checks the YYYY-MM-DD format used for all date-keyed rows.
func ValidDate(value string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return nil
}

// Today formats the local date as YYYY-MM-DD.
func Today() string {
	return nowFunc().Format(dateLayout)
}
