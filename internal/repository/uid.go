package repository

import "github.com/google/uuid"

// UID returns a new item identifier. UUIDv7 carries a millisecond timestamp
// followed by random bits; collisions are not guarded against.
func UID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
