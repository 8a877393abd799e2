package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter, p repository.Page) (repository.PageResult[model.User], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.PageResult[model.User]), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// passthroughTx runs fn inline and counts invocations.
type passthroughTx struct{ calls int }

func (p *passthroughTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	p.calls++
	return fn(ctx)
}
