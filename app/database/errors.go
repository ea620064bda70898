package database

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrPersistenceConflict is returned when a finalize or update would
	// touch a composite key that is already finalized. State is never
	// silently overwritten; the conflict is surfaced to the operator.
	ErrPersistenceConflict = errors.New("assignment already finalized")
)
