package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a time-ordered UUIDv7 string for a new record.
// Ids are never re-checked for uniqueness: 74 random bits per millisecond
// make a collision negligible for a single writer.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock sequence cannot be read
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
