// Package service implements the user use cases: input validation, email
// normalization and translating storage errors into client-facing ones.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
)

// ErrInvalidInput is matched by every validation failure returned here. Use
// FieldErrors to get the offending fields.
var ErrInvalidInput = errors.New("invalid input")

// FieldError names one rejected request field and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError returns nil for an empty list so callers can collect
// field errors and return the result unconditionally.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors unpacks err, through any wrapping, into its field list.
func FieldErrors(err error) []FieldError {
	var fe interface{ Fields() []FieldError }
	if errors.As(err, &fe) && errors.Is(err, ErrInvalidInput) {
		return fe.Fields()
	}
	return nil
}

type UserService interface {
	ListUsers(ctx context.Context, filter repository.UserFilter, page repository.Page) (repository.PageResult[model.User], error)
	CreateUser(ctx context.Context, name, email string) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	// UpdateUser applies the non-nil fields of patch; an empty patch returns the stored user.
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
