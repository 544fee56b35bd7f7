package storage

import "github.com/google/uuid"

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of a record id. Malformed ids are
// treated as "no match" by callers and never reach a backend.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
