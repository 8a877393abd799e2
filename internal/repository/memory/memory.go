// Package memory is a process-local implementation of the repository contracts.
// It backs the "memory" storage driver and tests that do not need Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
)

// Store keeps users in a map guarded by one mutex. The email index is checked
// and written under the same lock, mirroring a unique index.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]model.User
	byEmail map[string]int64
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		nextID:  1,
		users:   make(map[int64]model.User),
		byEmail: make(map[string]int64),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (s *Store) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(u.Name) == "" {
		return model.User{}, repository.ErrInvalidRecord
	}
	key := emailKey(u.Email)
	if _, taken := s.byEmail[key]; taken {
		return model.User{}, repository.ErrAlreadyExists
	}
	now := s.now()
	u.ID = s.nextID
	u.CreatedAt, u.UpdatedAt = now, now
	s.nextID++
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.User{}, repository.ErrInvalidRecord
	}
	u = patch.Apply(u)
	u.UpdatedAt = s.now()
	s.users[id] = u
	return u, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, emailKey(u.Email))
	return nil
}

func (s *Store) List(ctx context.Context, f repository.UserFilter, p repository.Page) (repository.PageResult[model.User], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	s.mu.RLock()
	matched := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if f.Disabled != nil && u.Disabled != *f.Disabled {
			continue
		}
		matched = append(matched, u)
	}
	s.mu.RUnlock()

	// ids grow monotonically, so id order is creation order
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	window := repository.Window(matched, p)
	items := make([]model.User, len(window))
	copy(items, window)
	return repository.NewPageResult(p, items, len(matched)), nil
}

// Ping always succeeds; the store lives in-process.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

var (
	_ repository.UserRepository = (*Store)(nil)
	_ repository.Pinger         = (*Store)(nil)
)

// TxManager runs fn directly. The store offers per-call atomicity only, so
// there is nothing to roll back.
type TxManager struct{}

func (TxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = TxManager{}
