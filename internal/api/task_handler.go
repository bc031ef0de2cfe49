package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskforge/task-api/internal/api/shared"
	"github.com/taskforge/task-api/internal/api/validation"
	"github.com/taskforge/task-api/internal/domain"
	"github.com/taskforge/task-api/internal/service"
)

// Path parameter schemas, declared as rule tables.
var (
	taskIDParam = validation.ParamRule{
		Name: "id",
		Kind: validation.PositiveInt,
	}
	taskStatusParam = validation.ParamRule{
		Name:    "status",
		Kind:    validation.Enum,
		Allowed: statusLiterals(),
	}
)

func statusLiterals() []string {
	literals := make([]string, 0, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		literals = append(literals, string(status))
	}
	return literals
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts every task endpoint on the given router.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/status/{status}", h.ListTasksByStatus)
		r.Get("/{id}", h.GetTask)
		r.Patch("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
		r.Patch("/{id}/status", h.ChangeTaskStatus)
		r.Get("/{id}/days-elapsed", h.DaysElapsed)
	})
}

// decodeBody decodes the JSON body into v. A malformed body, an unknown
// field or a wrong-typed field terminates the request here; the returned
// bool says whether the handler may continue.
func (h *TaskHandler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := shared.DecodeJSON(r, v)
	if err == nil {
		return true
	}

	var unknown *shared.UnknownFieldError
	if errors.As(err, &unknown) {
		HandleError(w, r, NewBadRequest([]string{validation.NotAllowed(unknown.Field)}))
		return false
	}

	var mismatch *shared.TypeMismatchError
	if errors.As(err, &mismatch) {
		cause := validation.MustBeObject()
		if mismatch.Field != "" {
			cause = validation.MustBeString(mismatch.Field)
		}
		HandleError(w, r, NewBadRequest([]string{cause}))
		return false
	}

	HandleError(w, r, err)
	return false
}

// idParam validates the {id} path parameter, contributing any violations to
// the shared cause list.
func idParam(r *http.Request, causes *[]string) int64 {
	value, paramCauses := validation.Param(taskIDParam, chi.URLParam(r, taskIDParam.Name))
	if paramCauses != nil {
		*causes = append(*causes, paramCauses...)
		return 0
	}
	return value.(int64)
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if causes := validation.Struct(&req); causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	var status domain.TaskStatus
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	task, err := h.taskService.CreateTask(r.Context(), *req.Title, *req.Description, status)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	var causes []string
	id := idParam(r, &causes)
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasksByStatus handles GET /api/tasks/status/{status} requests.
func (h *TaskHandler) ListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	value, causes := validation.Param(taskStatusParam, chi.URLParam(r, taskStatusParam.Name))
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	tasks, err := h.taskService.ListTasksByStatus(r.Context(), domain.TaskStatus(value.(string)))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// UpdateTask handles PATCH /api/tasks/{id} requests. Parameter and body
// violations are collected into a single cause list before any business
// logic runs.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	var causes []string
	id := idParam(r, &causes)
	causes = append(causes, validation.Struct(&req)...)
	if req.Title == nil && req.Description == nil && req.Status == nil {
		causes = append(causes, validation.MustContainOneOf("title", "description", "status"))
	}
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, update)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ChangeTaskStatus handles PATCH /api/tasks/{id}/status requests.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeTaskStatusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	var causes []string
	id := idParam(r, &causes)
	causes = append(causes, validation.Struct(&req)...)
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	task, err := h.taskService.ChangeTaskStatus(r.Context(), id, domain.TaskStatus(*req.Status))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var causes []string
	id := idParam(r, &causes)
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Status:  http.StatusOK,
		Message: "Task successfully deleted",
	})
}

// DaysElapsed handles GET /api/tasks/{id}/days-elapsed requests.
func (h *TaskHandler) DaysElapsed(w http.ResponseWriter, r *http.Request) {
	var causes []string
	id := idParam(r, &causes)
	if causes != nil {
		HandleError(w, r, NewBadRequest(causes))
		return
	}

	days, err := h.taskService.DaysElapsed(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DaysElapsedResponse{DaysElapsed: days})
}
