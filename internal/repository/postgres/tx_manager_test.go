package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPoolIsRejected(t *testing.T) {
	ctx := context.Background()

	_, err := NewUserRepository(nil).GetByID(ctx, 1)
	assert.ErrorIs(t, err, errNilPool)

	assert.ErrorIs(t, NewPinger(nil).Ping(ctx), errNilPool)
	assert.ErrorIs(t, NewTxManager(nil).WithinTx(ctx, func(context.Context) error { return nil }), errNilPool)
}

func TestQuerierFor_WithoutTx(t *testing.T) {
	_, ok := txFromContext(context.Background())
	assert.False(t, ok)

	_, err := querierFor(context.Background(), nil)
	assert.ErrorIs(t, err, errNilPool)
}
