package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/service"
	"github.com/maxviazov/users-service/pkg/response"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(r *gin.RouterGroup) {
	g := r.Group(usersPath)
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/lookup", h.getByEmail)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Disabled *bool   `json:"disabled"`
}

// decodeMessages maps JSON fields to the message reported when a value of the
// wrong type is supplied for them.
var decodeMessages = map[string]string{
	"name":     service.MsgNameInvalid,
	"email":    service.MsgEmailInvalid,
	"disabled": service.MsgDisabledInvalid,
}

func (h *UserHandler) list(c *gin.Context) {
	// unparsable values fall through as 0 and the service substitutes defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	var filter repository.UserFilter
	if raw, ok := c.GetQuery("disabled"); ok && strings.TrimSpace(raw) != "" {
		v := parseBoolQuery(raw)
		filter.Disabled = &v
	}

	res, err := h.svc.ListUsers(c.Request.Context(), filter, repository.Page{Number: page, Limit: limit})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *UserHandler) create(c *gin.Context) {
	var req createUserRequest
	// an empty body is treated as {} so the client gets per-field errors
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(c, decodeError(err))
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, u)
}

func (h *UserHandler) getByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, u)
}

func (h *UserHandler) getByEmail(c *gin.Context) {
	u, err := h.svc.GetUserByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, u)
}

func (h *UserHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(c, decodeError(err))
		return
	}
	u, err := h.svc.UpdateUser(c.Request.Context(), id, model.UserPatch{Name: req.Name, Disabled: req.Disabled})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, u)
}

func (h *UserHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteNoContent(c, http.StatusNoContent)
}

// parseBoolQuery treats exactly "true" as true; every other value is false.
func parseBoolQuery(raw string) bool {
	return raw == "true"
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: service.MsgIDInvalid}})
	}
	return id, nil
}

// decodeError turns a JSON binding failure into a field-level validation error
// when the offending field is known, and a body-level one otherwise.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if msg, ok := decodeMessages[typeErr.Field]; ok {
			return service.NewInvalidInputError([]service.FieldError{{Field: typeErr.Field, Message: msg}})
		}
	}
	return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "request body must be a valid JSON object"}})
}
