package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/task-api/internal/domain"
	"github.com/taskforge/task-api/internal/store"
)

// mockTaskStore is a hand-rolled mock implementation of store.TaskStore.
type mockTaskStore struct {
	createFn       func(ctx context.Context, task *domain.Task) error
	findAllFn      func(ctx context.Context) ([]*domain.Task, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.Task, error)
	findByStatusFn func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	updateFn       func(ctx context.Context, task *domain.Task) error
	softDeleteFn   func(ctx context.Context, id int64) error
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.createFn(ctx, task)
}

func (m *mockTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return m.findAllFn(ctx)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTaskStore) FindByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return m.findByStatusFn(ctx, status)
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.updateFn(ctx, task)
}

func (m *mockTaskStore) SoftDelete(ctx context.Context, id int64) error {
	return m.softDeleteFn(ctx, id)
}

func newService(t *testing.T, taskStore store.TaskStore) *taskServiceImpl {
	t.Helper()
	svc, err := NewTaskService(taskStore, nil)
	require.NoError(t, err)
	return svc.(*taskServiceImpl)
}

func sampleTask(id int64) *domain.Task {
	now := time.Now().UTC()
	return &domain.Task{
		ID:          id,
		Title:       "Buy groceries",
		Description: "Milk, Bread, Eggs",
		Status:      domain.TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func strPtr(s string) *string { return &s }

func TestNewTaskService(t *testing.T) {
	t.Run("rejects_nil_store", func(t *testing.T) {
		svc, err := NewTaskService(nil, nil)
		require.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("accepts_nil_logger", func(t *testing.T) {
		svc, err := NewTaskService(&mockTaskStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("defaults_status_to_pending", func(t *testing.T) {
		taskStore := &mockTaskStore{
			createFn: func(ctx context.Context, task *domain.Task) error {
				// Simulate the database filling in generated values
				task.ID = 1
				task.CreatedAt = time.Now().UTC()
				task.UpdatedAt = task.CreatedAt
				return nil
			},
		}
		svc := newService(t, taskStore)

		task, err := svc.CreateTask(context.Background(), "Buy groceries", "Milk, Bread, Eggs", "")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, int64(1), task.ID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.False(t, task.UpdatedAt.IsZero())
	})

	t.Run("keeps_explicit_status", func(t *testing.T) {
		taskStore := &mockTaskStore{
			createFn: func(ctx context.Context, task *domain.Task) error {
				task.ID = 2
				return nil
			},
		}
		svc := newService(t, taskStore)

		task, err := svc.CreateTask(
			context.Background(),
			"Finish report",
			"Due Friday",
			domain.TaskStatusCompleted,
		)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	})

	t.Run("accepts_multibyte_title_within_limit", func(t *testing.T) {
		taskStore := &mockTaskStore{
			createFn: func(ctx context.Context, task *domain.Task) error {
				task.ID = 3
				return nil
			},
		}
		svc := newService(t, taskStore)

		// 200 characters but 400 bytes; the limit counts characters
		task, err := svc.CreateTask(context.Background(), strings.Repeat("é", 200), "desc", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), task.ID)
	})

	t.Run("rejects_invalid_data", func(t *testing.T) {
		svc := newService(t, &mockTaskStore{})

		task, err := svc.CreateTask(context.Background(), "", "description", "")
		require.Error(t, err)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})

	t.Run("wraps_store_failure", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		taskStore := &mockTaskStore{
			createFn: func(ctx context.Context, task *domain.Task) error {
				return storeErr
			},
		}
		svc := newService(t, taskStore)

		_, err := svc.CreateTask(context.Background(), "title", "description", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)

		var svcErr *TaskServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
	})
}

func TestGetTask(t *testing.T) {
	t.Run("returns_task", func(t *testing.T) {
		want := sampleTask(7)
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				assert.Equal(t, int64(7), id)
				return want, nil
			},
		}
		svc := newService(t, taskStore)

		task, err := svc.GetTask(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, want, task)
	})

	t.Run("maps_store_not_found_to_service_sentinel", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		task, err := svc.GetTask(context.Background(), 99)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("overwrites_only_supplied_fields", func(t *testing.T) {
		existing := sampleTask(3)
		var persisted *domain.Task
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, task *domain.Task) error {
				persisted = task
				task.UpdatedAt = time.Now().UTC()
				return nil
			},
		}
		svc := newService(t, taskStore)

		task, err := svc.UpdateTask(context.Background(), 3, TaskUpdate{
			Title: strPtr("Buy groceries and fruits"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy groceries and fruits", task.Title)
		assert.Equal(t, "Milk, Bread, Eggs", task.Description, "omitted field retains prior value")
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		require.NotNil(t, persisted)
		assert.Equal(t, int64(3), persisted.ID)
	})

	t.Run("updates_status_when_supplied", func(t *testing.T) {
		existing := sampleTask(3)
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, task *domain.Task) error {
				return nil
			},
		}
		svc := newService(t, taskStore)

		status := domain.TaskStatusCompleted
		task, err := svc.UpdateTask(context.Background(), 3, TaskUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	})

	t.Run("not_found_on_load", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		_, err := svc.UpdateTask(context.Background(), 3, TaskUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("not_found_when_update_affects_no_rows", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return sampleTask(3), nil
			},
			updateFn: func(ctx context.Context, task *domain.Task) error {
				return store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		_, err := svc.UpdateTask(context.Background(), 3, TaskUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestChangeTaskStatus(t *testing.T) {
	t.Run("any_status_may_move_to_any_other", func(t *testing.T) {
		transitions := []struct {
			from domain.TaskStatus
			to   domain.TaskStatus
		}{
			{domain.TaskStatusPending, domain.TaskStatusCompleted},
			{domain.TaskStatusCompleted, domain.TaskStatusPending},
			{domain.TaskStatusInProgress, domain.TaskStatusDeleted},
			{domain.TaskStatusDeleted, domain.TaskStatusInProgress},
		}

		for _, tr := range transitions {
			existing := sampleTask(5)
			existing.Status = tr.from
			taskStore := &mockTaskStore{
				getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
					return existing, nil
				},
				updateFn: func(ctx context.Context, task *domain.Task) error {
					return nil
				},
			}
			svc := newService(t, taskStore)

			task, err := svc.ChangeTaskStatus(context.Background(), 5, tr.to)
			require.NoError(t, err, "%s -> %s", tr.from, tr.to)
			assert.Equal(t, tr.to, task.Status)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		_, err := svc.ChangeTaskStatus(context.Background(), 5, domain.TaskStatusCompleted)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deleted := false
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return sampleTask(4), nil
			},
			softDeleteFn: func(ctx context.Context, id int64) error {
				deleted = true
				assert.Equal(t, int64(4), id)
				return nil
			},
		}
		svc := newService(t, taskStore)

		require.NoError(t, svc.DeleteTask(context.Background(), 4))
		assert.True(t, deleted)
	})

	t.Run("not_found_on_load", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		assert.ErrorIs(t, svc.DeleteTask(context.Background(), 4), ErrTaskNotFound)
	})

	t.Run("concurrent_delete_race_reported_as_not_found", func(t *testing.T) {
		// The task exists at the check but the tombstone write affects zero
		// rows: another delete won the race in between.
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return sampleTask(4), nil
			},
			softDeleteFn: func(ctx context.Context, id int64) error {
				return store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		assert.ErrorIs(t, svc.DeleteTask(context.Background(), 4), ErrTaskNotFound)
	})
}

func TestDaysElapsed(t *testing.T) {
	now := time.Date(2024, 9, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"created_now", now, 0},
		{"exactly_five_days", now.Add(-5 * 24 * time.Hour), 5},
		{"truncates_fractional_days", now.Add(-5*24*time.Hour - 21*time.Hour), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := sampleTask(9)
			task.CreatedAt = tc.createdAt
			taskStore := &mockTaskStore{
				getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
					return task, nil
				},
			}
			svc := newService(t, taskStore)
			svc.now = func() time.Time { return now }

			days, err := svc.DaysElapsed(context.Background(), 9)
			require.NoError(t, err)
			assert.Equal(t, tc.want, days)
		})
	}

	t.Run("not_found", func(t *testing.T) {
		taskStore := &mockTaskStore{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		svc := newService(t, taskStore)

		_, err := svc.DaysElapsed(context.Background(), 9)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestListTasks(t *testing.T) {
	want := []*domain.Task{sampleTask(1), sampleTask(2)}
	taskStore := &mockTaskStore{
		findAllFn: func(ctx context.Context) ([]*domain.Task, error) {
			return want, nil
		},
	}
	svc := newService(t, taskStore)

	tasks, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, tasks)
}

func TestListTasksByStatus(t *testing.T) {
	completed := sampleTask(1)
	completed.Status = domain.TaskStatusCompleted
	taskStore := &mockTaskStore{
		findByStatusFn: func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
			assert.Equal(t, domain.TaskStatusCompleted, status)
			return []*domain.Task{completed}, nil
		},
	}
	svc := newService(t, taskStore)

	tasks, err := svc.ListTasksByStatus(context.Background(), domain.TaskStatusCompleted)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskStatusCompleted, tasks[0].Status)
}
