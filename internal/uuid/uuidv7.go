// Package uuid wraps google/uuid with the identifier conventions used by the
// ledger: every primary key is a time-ordered UUIDv7 string.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. UUIDv7 sorts by creation time, which keeps
// btree indexes append-mostly and makes "ORDER BY id" lock ordering stable.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates s and returns its canonical lower-case form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// AllValid reports whether every id in ids is a valid UUID.
func AllValid(ids ...string) bool {
	for _, id := range ids {
		if !IsValid(id) {
			return false
		}
	}
	return true
}
