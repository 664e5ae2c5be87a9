// Package storage defines the sentinel errors shared by the persistence
// adapters and the domain services. It imports nothing so that both sides
// of the repository contracts can depend on it.
package storage

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrActiveBeatExists is returned when inserting a second beat with no
	// end time would violate the single-active-timer constraint
	ErrActiveBeatExists = errors.New("an active beat already exists")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
