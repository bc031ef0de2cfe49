package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrTaskNotFound is returned when a requested task does not exist in the
	// store, or exists only as a soft-deleted tombstone. Tombstoned rows are
	// invisible to every read path.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidEntity is returned when an entity fails a database-level
	// constraint before or during storage, such as an invalid status enum
	// value. Check the wrapped error for specifics.
	ErrInvalidEntity = errors.New("invalid entity")
)
