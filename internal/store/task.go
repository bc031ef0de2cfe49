package store

import (
	"context"

	"github.com/taskforge/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every read method excludes soft-deleted rows: once a task's tombstone is
// set, it behaves exactly as if it never existed, even though the row is
// retained for audit purposes.
type TaskStore interface {
	// Create persists a new task. The database assigns the ID and the
	// created/updated timestamps; the given task is updated in place with
	// the generated values.
	Create(ctx context.Context, task *domain.Task) error

	// FindAll retrieves every non-deleted task, in whatever order the
	// database yields. Returns an empty slice when there are none.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindByStatus retrieves every non-deleted task with the given status.
	// Returns an empty slice when there are none.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// Update overwrites the title, description and status of an existing
	// task and refreshes its updated timestamp. The task's UpdatedAt field
	// is set to the persisted value.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	Update(ctx context.Context, task *domain.Task) error

	// SoftDelete sets the task's tombstone timestamp, logically removing it
	// from all subsequent operations while retaining the row.
	// Returns ErrTaskNotFound if no live row with that ID was affected.
	SoftDelete(ctx context.Context, id int64) error
}
