package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/users-service/internal/repository"
)

// Defaults applied to missing or non-positive paging parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Client-facing messages, shared with the HTTP layer for decode errors.
const (
	MsgNameInvalid     = "Name must be a string and cannot be empty"
	MsgEmailInvalid    = "Email must be a valid email address"
	MsgEmailTaken      = "Email already exists"
	MsgDisabledInvalid = "Disabled must be a boolean"
	MsgIDInvalid       = "must be a valid integer > 0"
)

func normalizePage(p repository.Page) repository.Page {
	if p.Number <= 0 {
		p.Number = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// NormalizeEmail is the canonical stored form: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type createUserInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

var fieldMessages = map[string]FieldError{
	"Name":  {Field: "name", Message: MsgNameInvalid},
	"Email": {Field: "email", Message: MsgEmailInvalid},
}

// validationFieldErrors converts validator output into client field errors,
// one entry per offending field.
func validationFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if seen[fe.StructField()] {
			continue
		}
		seen[fe.StructField()] = true
		if msg, ok := fieldMessages[fe.StructField()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, FieldError{Field: strings.ToLower(fe.Field()), Message: "failed " + fe.Tag()})
	}
	return out
}
