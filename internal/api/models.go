package api

import (
	"time"

	"github.com/taskforge/task-api/internal/domain"
)

// Request bodies use pointer fields so a missing field and a present-but-
// empty field produce different validation causes, matching strict schemas.

// CreateTaskRequest represents the request body for creating a new task.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"required,min=1"`
	Status      *string `json:"status"      validate:"omitnil,oneof=pending in-progress completed deleted"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// All fields are optional but at least one must be supplied; the handler
// enforces that cross-field rule. omitnil rather than omitempty: an absent
// field skips validation, a present-but-empty one does not.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Status      *string `json:"status"      validate:"omitnil,oneof=pending in-progress completed deleted"`
}

// ChangeTaskStatusRequest represents the request body for a status change.
type ChangeTaskStatusRequest struct {
	Status *string `json:"status" validate:"required,oneof=pending in-progress completed deleted"`
}

// TaskResponse is the public representation of a task. The soft-delete
// tombstone is deliberately absent.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DaysElapsedResponse carries the whole days since a task's creation.
type DaysElapsedResponse struct {
	DaysElapsed int `json:"daysElapsed"`
}

// MessageResponse is the acknowledgement body used by operations that do not
// return an entity, such as delete.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// taskToResponse converts a domain.Task to its public representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts a slice of tasks, yielding an empty slice (not
// nil) so the JSON array is always present.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}
