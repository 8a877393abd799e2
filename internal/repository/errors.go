package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the addressed user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is raised by the unique index on lower(email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRecord means storage rejected the row itself (CHECK / NOT NULL).
	ErrInvalidRecord = errors.New("invalid record")
)

// MapPgError folds driver errors into the sentinels above, keeping the
// violated constraint in the message. Unrecognized errors pass through.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, pgErr.ConstraintName)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return fmt.Errorf("%w: %s", ErrInvalidRecord, pgErr.ConstraintName)
	}
	return err
}
