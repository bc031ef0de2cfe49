package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskforge/task-api/internal/domain"
	"github.com/taskforge/task-api/internal/store"
)

// TaskService provides task-related operations. It owns the business rules
// for field defaults, partial updates, status changes and soft deletion, and
// mediates all access to the persistence layer.
type TaskService interface {
	// CreateTask persists a new task. An empty status defaults to pending.
	CreateTask(ctx context.Context, title, description string, status domain.TaskStatus) (*domain.Task, error)

	// ListTasks returns every non-deleted task, unfiltered and in store order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if absent or soft-deleted.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasksByStatus returns every non-deleted task with the given status.
	// The status must already be validated upstream.
	ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// UpdateTask overwrites only the supplied fields; nil fields retain their
	// prior value. At least one field must be supplied, which is enforced by
	// request validation, not here.
	// Returns ErrTaskNotFound if absent or soft-deleted.
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)

	// ChangeTaskStatus sets the task's status to the given value. Any status
	// may move to any other; there is no transition graph.
	// Returns ErrTaskNotFound if absent or soft-deleted.
	ChangeTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask applies the soft-delete tombstone.
	// Returns ErrTaskNotFound if absent, soft-deleted, or if a concurrent
	// delete won the race between the existence check and the write.
	DeleteTask(ctx context.Context, id int64) error

	// DaysElapsed reports the whole days between the task's creation and now,
	// truncated toward zero.
	// Returns ErrTaskNotFound if absent or soft-deleted.
	DaysElapsed(ctx context.Context, id int64) (int, error)
}

// TaskUpdate carries the optional fields of a partial update. A nil pointer
// means "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// newTaskServiceError maps store sentinels to service sentinels and wraps
// everything else with operation context. Absence is propagated as
// ErrTaskNotFound, never as a wrapped failure.
func newTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	// now is injectable for deterministic elapsed-days tests
	now func() time.Time
}

// NewTaskService creates a new TaskService backed by the given store.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateTask creates a new task, defaulting the status to pending when omitted.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	task, err := domain.NewTask(title, description, status)
	if err != nil {
		return nil, newTaskServiceError("create_task", "invalid task data", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, newTaskServiceError("create_task", "failed to persist task", err)
	}

	s.logger.Debug("task created",
		"task_id", task.ID,
		"status", string(task.Status))
	return task, nil
}

// ListTasks returns all non-deleted tasks in whatever order the store yields.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.FindAll(ctx)
	if err != nil {
		return nil, newTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// ListTasksByStatus returns all non-deleted tasks with the given status.
func (s *taskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.FindByStatus(ctx, status)
	if err != nil {
		return nil, newTaskServiceError("list_tasks_by_status", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask loads the task, overwrites only the supplied fields, and
// persists the result.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	update TaskUpdate,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newTaskServiceError("update_task", "failed to load task", err)
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, newTaskServiceError("update_task", "failed to persist task", err)
	}

	s.logger.Debug("task updated", "task_id", task.ID)
	return task, nil
}

// ChangeTaskStatus loads the task and sets its status to the new value.
func (s *taskServiceImpl) ChangeTaskStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newTaskServiceError("change_task_status", "failed to load task", err)
	}

	task.Status = status
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, newTaskServiceError("change_task_status", "failed to persist task", err)
	}

	s.logger.Debug("task status changed",
		"task_id", task.ID,
		"status", string(status))
	return task, nil
}

// DeleteTask verifies the task exists, then applies the tombstone. A
// zero-rows-affected result from the tombstone write means a concurrent
// delete won the race; it is reported as ErrTaskNotFound like any other
// absence.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if _, err := s.taskStore.GetByID(ctx, id); err != nil {
		return newTaskServiceError("delete_task", "failed to load task", err)
	}

	if err := s.taskStore.SoftDelete(ctx, id); err != nil {
		return newTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Debug("task deleted", "task_id", id)
	return nil
}

// DaysElapsed computes the whole days since the task was created.
func (s *taskServiceImpl) DaysElapsed(ctx context.Context, id int64) (int, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return 0, newTaskServiceError("days_elapsed", "failed to load task", err)
	}

	return task.DaysElapsed(s.now()), nil
}
