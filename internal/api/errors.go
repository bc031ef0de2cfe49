package api

import (
	"errors"
	"net/http"

	"github.com/taskforge/task-api/internal/api/shared"
	"github.com/taskforge/task-api/internal/platform/logger"
	"github.com/taskforge/task-api/internal/service"
)

// Messages with exact wire text. Clients and tests match on these strings.
const (
	msgBadRequest     = "Bad request"
	msgInvalidJSON    = "Invalid JSON payload"
	msgTaskNotFound   = "Task not found"
	msgInternalServer = "Internal server error"
)

// Error is an API-level error carrying the HTTP status, client-facing
// message, and (for validation failures) the list of violated constraints.
type Error struct {
	Status  int
	Message string
	Cause   []string
}

func (e *Error) Error() string {
	return e.Message
}

// NewBadRequest builds the 400 error produced by request validation. The
// top-level message is always "Bad request"; the individual violations go in
// the cause list.
func NewBadRequest(cause []string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: msgBadRequest,
		Cause:   cause,
	}
}

// HandleError is the single terminal point where any failure becomes the
// uniform wire response. It never fails itself: whatever error (or nil) it
// receives, exactly one response of shape {status, message, cause?} is
// written.
//
// Policy:
//   - a body that is not well-formed JSON is always 400 "Invalid JSON
//     payload", overriding any status the error carries
//   - *Error values render their own status; cause is included only on 400
//   - service.ErrTaskNotFound is 404 "Task not found"
//   - for 400, 401 and 404 the message is returned verbatim; everything
//     else is replaced by the generic 500 message and the real error is
//     logged for operators
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if err != nil && shared.IsMalformedJSON(err) {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidJSON, nil)
		return
	}

	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}

		if !exposesMessage(status) {
			log.Error("internal error",
				"error", err.Error(),
				"status_code", status,
				"path", r.URL.Path,
				"method", r.Method)
			shared.RespondWithError(w, r, status, msgInternalServer, nil)
			return
		}

		var cause []string
		if status == http.StatusBadRequest {
			cause = apiErr.Cause
		}
		shared.RespondWithError(w, r, status, apiErr.Message, cause)

	case errors.Is(err, service.ErrTaskNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, msgTaskNotFound, nil)

	default:
		// Unexpected failure, or nil. The real message never reaches the
		// client; it is logged for operator visibility instead.
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		log.Error("internal error",
			"error", msg,
			"path", r.URL.Path,
			"method", r.Method)
		shared.RespondWithError(w, r, http.StatusInternalServerError, msgInternalServer, nil)
	}
}

// exposesMessage reports whether a status code's real message may be
// returned to the caller. All other statuses get the generic message.
func exposesMessage(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return true
	default:
		return false
	}
}
