package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/users-service/internal/repository"
)

type txManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager opens REPEATABLE READ transactions, so a page and its count
// read inside one WithinTx come from the same snapshot.
func NewTxManager(pool *pgxpool.Pool) repository.TxManager {
	return &txManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.RepeatableRead}}
}

// WithinTx commits when fn returns nil and rolls back otherwise. Nested calls
// reuse the outer transaction.
func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}
	if m.pool == nil {
		return errNilPool
	}

	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return repository.MapPgError(err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		return err
	}
	return repository.MapPgError(tx.Commit(ctx))
}

var _ repository.TxManager = (*txManager)(nil)
