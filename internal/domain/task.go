package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values. The set is closed: any other string is
// rejected at the boundary and by the database enum.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusDeleted    TaskStatus = "deleted"
)

// TaskStatuses lists every valid status in declaration order. Validation
// messages and the database enum are derived from this slice.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusDeleted,
}

// Common validation errors for Task. Each wraps ErrValidation so callers can
// match the whole category.
var (
	ErrEmptyTaskTitle       = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong     = fmt.Errorf("%w: task title cannot exceed 255 characters", ErrValidation)
	ErrEmptyTaskDescription = fmt.Errorf("%w: task description cannot be empty", ErrValidation)
	ErrInvalidTaskStatus    = fmt.Errorf("%w: invalid task status", ErrValidation)
)

// MaxTitleLength is the upper bound on task titles in characters, matching
// the VARCHAR(255) column in the tasks table. VARCHAR counts characters, not
// bytes, so multibyte titles are measured in runes everywhere.
const MaxTitleLength = 255

// Task is the sole entity of the system. ID, CreatedAt and UpdatedAt are
// assigned by the database; DeletedAt is the soft-delete tombstone and is
// never serialized into API responses.
//
// Note that status "deleted" and the DeletedAt tombstone are independent
// concepts: a task may carry status "deleted" while still visible, and a
// tombstoned task keeps whatever status it last had.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// NewTask creates a Task ready for persistence with the given title,
// description and status. An empty status defaults to pending. The ID and
// timestamps remain zero until the store fills them in.
// Returns an error if validation fails.
func NewTask(title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}

	if t.Description == "" {
		return ErrEmptyTaskDescription
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// IsValidTaskStatus checks if the given status is one of the four
// enumerated values.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusDeleted:
		return true
	default:
		return false
	}
}

// DaysElapsed returns the number of whole days between the task's creation
// and now. Fractional days are truncated, never rounded: a task created 5.9
// days ago reports 5.
func (t *Task) DaysElapsed(now time.Time) int {
	return int(now.Sub(t.CreatedAt) / (24 * time.Hour))
}
