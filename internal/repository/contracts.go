package repository

import (
	"context"

	"github.com/maxviazov/users-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// UserFilter narrows the candidate set before pagination.
// A nil Disabled matches every user.
type UserFilter struct {
	Disabled *bool
}

// UserRepository declares persistence operations for users.
// Implementations return ErrNotFound only when the row is genuinely absent and
// ErrAlreadyExists only when the email uniqueness constraint rejects a write.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error)
	Delete(ctx context.Context, id int64) error
	// List returns users in creation order, narrowed by f and windowed by p.
	List(ctx context.Context, f UserFilter, p Page) (PageResult[model.User], error)
}
