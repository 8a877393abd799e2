// Package response owns the JSON envelopes written by the HTTP layer and the
// single mapping from domain errors to status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/service"
)

// ErrorPayload is the body of every non-2xx response.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

type errorRule struct {
	target  error
	status  int
	payload ErrorPayload
}

// checked in order; the first errors.Is match wins
var errorRules = []errorRule{
	{repository.ErrNotFound, http.StatusNotFound, ErrorPayload{Error: "not_found", Message: "User not found"}},
	{repository.ErrInvalidRecord, http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: "record rejected by storage"}},
}

// MapError returns the status and payload for err. Anything unrecognized is a
// 500 whose payload carries no detail from err.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, r := range errorRules {
		if errors.Is(err, r.target) {
			return r.status, r.payload
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError aborts the request with the mapped error. err is recorded on the
// gin context for the access log.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WriteNoContent flushes status with an empty body, as DELETE does with 204.
func WriteNoContent(c *gin.Context, status int) {
	c.Status(status)
	c.Writer.WriteHeaderNow()
}
