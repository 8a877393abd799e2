package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/service"
	"github.com/maxviazov/users-service/pkg/response"
)

func TestMapError(t *testing.T) {
	invalid := service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "bad"}})
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", invalid, 400, "invalid_input"},
		{"wrapped_invalid_input", fmt.Errorf("create: %w", invalid), 400, "invalid_input"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"wrapped_not_found", fmt.Errorf("get: %w", repository.ErrNotFound), 404, "not_found"},
		{"already_exists_unmapped_by_service", repository.ErrAlreadyExists, 500, "internal_error"},
		{"invalid_record", fmt.Errorf("%w: users_name_not_blank", repository.ErrInvalidRecord), 400, "invalid_input"},
		{"internal", errors.New("boom"), 500, "internal_error"},
		{"nil", nil, 200, "ok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.name == "invalid_input" || tc.name == "wrapped_invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestMapError_InternalDoesNotLeak(t *testing.T) {
	_, payload := response.MapError(errors.New("password=hunter2"))
	assert.NotContains(t, payload.Message, "hunter2")
}

func TestWriteNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	response.WriteNoContent(c, http.StatusNoContent)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}
