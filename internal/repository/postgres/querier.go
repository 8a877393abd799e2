package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNilPool = errors.New("pgx pool is nil")

// querier is what both *pgxpool.Pool and pgx.Tx offer; repositories only
// talk to storage through it.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

func contextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

// querierFor prefers the unit of work opened by TxManager, if any.
func querierFor(ctx context.Context, pool *pgxpool.Pool) (querier, error) {
	if tx, ok := txFromContext(ctx); ok {
		return tx, nil
	}
	if pool == nil {
		return nil, errNilPool
	}
	return pool, nil
}
