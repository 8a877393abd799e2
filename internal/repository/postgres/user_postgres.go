package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
)

const (
	userColumns = `id, name, email, disabled, created_at, updated_at`

	// $1 is a nullable boolean; NULL disables the filter
	disabledPredicate = `($1::BOOLEAN IS NULL OR disabled = $1)`

	// fallback for callers that bypass the service defaults
	fallbackLimit = 10
)

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Disabled, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// queryUser runs a single-row statement returning userColumns. No row maps to
// ErrNotFound through MapPgError.
func (r *userRepository) queryUser(ctx context.Context, sql string, args ...any) (model.User, error) {
	db, err := querierFor(ctx, r.pool)
	if err != nil {
		return model.User{}, err
	}
	u, err := scanUser(db.QueryRow(ctx, sql, args...))
	if err != nil {
		return model.User{}, repository.MapPgError(err)
	}
	return u, nil
}

// Create relies on the unique index over lower(email); of two concurrent inserts
// of one address, the loser gets ErrAlreadyExists.
func (r *userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	return r.queryUser(ctx,
		`INSERT INTO users (name, email, disabled) VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.Disabled,
	)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// Update applies the non-nil patch fields in one statement. Only a missing row
// is reported as ErrNotFound; other failures pass through.
func (r *userRepository) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	return r.queryUser(ctx,
		`UPDATE users SET
			name = COALESCE($2, name),
			disabled = COALESCE($3, disabled),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, patch.Name, patch.Disabled,
	)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	db, err := querierFor(ctx, r.pool)
	if err != nil {
		return err
	}
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List issues the bounded fetch and the count as two statements: a window
// total would be lost on pages past the end, which still need metadata.
func (r *userRepository) List(ctx context.Context, f repository.UserFilter, p repository.Page) (repository.PageResult[model.User], error) {
	db, err := querierFor(ctx, r.pool)
	if err != nil {
		return repository.PageResult[model.User]{}, err
	}
	if p.Limit <= 0 {
		p.Limit = fallbackLimit
	}
	if p.Number <= 0 {
		p.Number = 1
	}

	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+disabledPredicate+`
		 ORDER BY id LIMIT $2 OFFSET $3`,
		f.Disabled, p.Limit, p.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}

	var total int
	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+disabledPredicate, f.Disabled).Scan(&total)
	if err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	return repository.NewPageResult(p, items, total), nil
}

var _ repository.UserRepository = (*userRepository)(nil)
