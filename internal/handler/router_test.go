package handler_test

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/users-service/internal/handler"
	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/repository/memory"
	"github.com/maxviazov/users-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	svc := service.NewUserService(store, memory.TxManager{}, zerolog.Nop())
	return handler.NewRouter(zerolog.Nop(), []string{"*"}, store, svc)
}

func TestRouter_UserLifecycle(t *testing.T) {
	r := newApp(t)

	w := do(r, http.MethodPost, "/users", `{"name":"  Ada  ","email":"Ada@Example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Ada", created.Name)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.False(t, created.Disabled)

	w = do(r, http.MethodPost, "/users", `{"name":"Other","email":"ADA@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, []service.FieldError{{Field: "email", Message: service.MsgEmailTaken}}, body.FieldErrors)

	w = do(r, http.MethodGet, "/users/lookup?email=ada@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)

	path := fmt.Sprintf("/api/v1/users/%d", created.ID)
	w = do(r, http.MethodPut, path, `{"disabled":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Disabled)
	assert.Equal(t, "Ada", updated.Name)

	w = do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CreateValidation(t *testing.T) {
	r := newApp(t)
	w := do(r, http.MethodPost, "/users", `{"name":"","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.ElementsMatch(t, []service.FieldError{
		{Field: "name", Message: service.MsgNameInvalid},
		{Field: "email", Message: service.MsgEmailInvalid},
	}, body.FieldErrors)
}

func TestRouter_ListPagination(t *testing.T) {
	r := newApp(t)
	for i := 1; i <= 5; i++ {
		w := do(r, http.MethodPost, "/users", fmt.Sprintf(`{"name":"User %d","email":"user%d@example.com"}`, i, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(r, http.MethodGet, "/users?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page repository.PageResult[model.User]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 5, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "User 3", page.Items[0].Name)
	assert.Equal(t, "User 4", page.Items[1].Name)

	w = do(r, http.MethodGet, "/users?page=0&limit=junk", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Items, 5)

	w = do(r, http.MethodGet, "/users?disabled=true", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, strings.Contains(w.Body.String(), `"items":[]`), w.Body.String())
}

func TestRouter_ListHugePageAndLimit(t *testing.T) {
	r := newApp(t)
	for i := 1; i <= 5; i++ {
		w := do(r, http.MethodPost, "/users", fmt.Sprintf(`{"name":"User %d","email":"user%d@example.com"}`, i, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var page repository.PageResult[model.User]
	w := do(r, http.MethodGet, fmt.Sprintf("/users?page=%d&limit=10", math.MaxInt/5), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)

	w = do(r, http.MethodGet, fmt.Sprintf("/users?limit=%d", math.MaxInt), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	r := newApp(t)

	w := do(r, http.MethodGet, "/live", "")
	assert.NotEmpty(t, w.Header().Get(handler.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(handler.RequestIDHeader, "abc-123")
	req.Header.Set("Origin", "http://client.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(handler.RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
