package memory

import (
	"context"
	"testing"

	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/repository/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UserContract(t *testing.T) {
	contract.RunUserRepositoryContract(t, func(t *testing.T) (repository.UserRepository, func()) {
		return NewStore(), func() {}
	})
}

func TestStore_TxContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.UserRepository, func()) {
		return TxManager{}, NewStore(), func() {}
	})
}

func TestStore_PingerContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		return NewStore(), func() {}
	})
}

func TestStore_DeleteFreesEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u, err := s.Create(ctx, model.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, u.ID))

	again, err := s.Create(ctx, model.User{Name: "A2", Email: "a@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, again.ID, "ids are never reused")
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, err := s.Create(ctx, model.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	res, err := s.List(ctx, repository.UserFilter{}, repository.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	res.Items[0].Name = "mutated"

	got, err := s.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Create(ctx, model.User{Name: "A", Email: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
