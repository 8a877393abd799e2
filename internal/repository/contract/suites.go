// Package contract holds storage-agnostic behaviour suites. Every repository
// implementation wires its own factory into these and must pass them unchanged.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
)

type UserFactory func(t *testing.T) (repository.UserRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, users repository.UserRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func ptr[T any](v T) *T { return &v }

func seedUsers(t *testing.T, repo repository.UserRepository, n int) []model.User {
	t.Helper()
	out := make([]model.User, 0, n)
	for i := 1; i <= n; i++ {
		u, err := repo.Create(context.Background(), model.User{
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		if err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
		out = append(out, u)
	}
	return out
}

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.User{Name: "Ada", Email: "ada@example.com"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID <= 0 || created.Disabled {
			t.Fatalf("unexpected created user: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name || got.Email != created.Email ||
			got.Disabled != created.Disabled || !got.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("mismatch: got %+v want %+v", got, created)
		}
	})

	t.Run("ids_are_unique", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		users := seedUsers(t, repo, 3)
		seen := map[int64]bool{}
		for _, u := range users {
			if seen[u.ID] {
				t.Fatalf("duplicate id %d", u.ID)
			}
			seen[u.ID] = true
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("get_by_email", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.User{Name: "Bob", Email: "bob@example.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByEmail(ctx, "bob@example.com")
		if err != nil || got.ID != created.ID {
			t.Fatalf("lookup by email: got %+v err=%v", got, err)
		}
		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for unknown email, got %v", err)
		}
	})

	t.Run("create_duplicate_email_already_exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.User{Name: "Dup", Email: "dup@example.com"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.User{Name: "Dup 2", Email: "dup@example.com"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		// mixed case must collide as well, even if a caller forgot to normalize
		_, err = repo.Create(ctx, model.User{Name: "Dup 3", Email: "DUP@Example.com"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists for mixed case, got %v", err)
		}
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.User{Name: "  ", Email: "blank@example.com"}); !errors.Is(err, repository.ErrInvalidRecord) {
			t.Fatalf("expected ErrInvalidRecord on create, got %v", err)
		}
		created, err := repo.Create(ctx, model.User{Name: "Eve", Email: "eve@example.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := repo.Update(ctx, created.ID, model.UserPatch{Name: ptr("")}); !errors.Is(err, repository.ErrInvalidRecord) {
			t.Fatalf("expected ErrInvalidRecord on update, got %v", err)
		}
	})

	t.Run("concurrent_duplicate_create_single_winner", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		const writers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			ok   int
			dups int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Create(context.Background(), model.User{Name: fmt.Sprintf("R%d", i), Email: "race@example.com"})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, repository.ErrAlreadyExists):
					dups++
				}
			}(i)
		}
		wg.Wait()
		if ok != 1 || dups != writers-1 {
			t.Fatalf("expected exactly one winner, got ok=%d dups=%d", ok, dups)
		}
	})

	t.Run("update_partial_fields", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.User{Name: "Carol", Email: "carol@example.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		out, err := repo.Update(ctx, created.ID, model.UserPatch{Disabled: ptr(true)})
		if err != nil {
			t.Fatalf("update disabled: %v", err)
		}
		if !out.Disabled || out.Name != "Carol" {
			t.Fatalf("disabled-only update touched other fields: %+v", out)
		}
		out, err = repo.Update(ctx, created.ID, model.UserPatch{Name: ptr("Caroline")})
		if err != nil {
			t.Fatalf("update name: %v", err)
		}
		if out.Name != "Caroline" || !out.Disabled || out.Email != created.Email {
			t.Fatalf("name-only update touched other fields: %+v", out)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Update(context.Background(), 424242, model.UserPatch{Name: ptr("X")})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete_then_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.User{Name: "Dan", Email: "dan@example.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("list_second_page_of_five", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		users := seedUsers(t, repo, 5)
		res, err := repo.List(context.Background(), repository.UserFilter{}, repository.Page{Number: 2, Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.TotalItems != 5 || res.TotalPages != 3 || res.Page != 2 || res.Limit != 2 {
			t.Fatalf("unexpected metadata: %+v", res)
		}
		if len(res.Items) != 2 || res.Items[0].ID != users[2].ID || res.Items[1].ID != users[3].ID {
			t.Fatalf("expected users 3-4, got %+v", res.Items)
		}
	})

	t.Run("list_past_end_keeps_metadata", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedUsers(t, repo, 3)
		res, err := repo.List(context.Background(), repository.UserFilter{}, repository.Page{Number: 9, Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Items == nil || res.TotalItems != 3 || res.TotalPages != 2 {
			t.Fatalf("unexpected page past end: %+v", res)
		}
	})

	t.Run("list_huge_page_and_limit", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedUsers(t, repo, 5)

		far, err := repo.List(ctx, repository.UserFilter{}, repository.Page{Number: math.MaxInt / 5, Limit: 10})
		if err != nil {
			t.Fatalf("list far page: %v", err)
		}
		if len(far.Items) != 0 || far.Items == nil || far.TotalItems != 5 || far.TotalPages != 1 {
			t.Fatalf("unexpected far page: %+v", far)
		}

		all, err := repo.List(ctx, repository.UserFilter{}, repository.Page{Number: 1, Limit: math.MaxInt})
		if err != nil {
			t.Fatalf("list huge limit: %v", err)
		}
		if len(all.Items) != 5 || all.TotalItems != 5 || all.TotalPages != 1 {
			t.Fatalf("unexpected huge-limit page: %+v", all)
		}
	})

	t.Run("list_empty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		res, err := repo.List(context.Background(), repository.UserFilter{}, repository.Page{Number: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.TotalItems != 0 || res.TotalPages != 0 || len(res.Items) != 0 {
			t.Fatalf("unexpected empty page: %+v", res)
		}
	})

	t.Run("list_filter_disabled", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		users := seedUsers(t, repo, 5)
		for _, u := range []model.User{users[1], users[3]} {
			if _, err := repo.Update(ctx, u.ID, model.UserPatch{Disabled: ptr(true)}); err != nil {
				t.Fatalf("disable %d: %v", u.ID, err)
			}
		}
		disabled, err := repo.List(ctx, repository.UserFilter{Disabled: ptr(true)}, repository.Page{Number: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list disabled: %v", err)
		}
		if disabled.TotalItems != 2 || len(disabled.Items) != 2 {
			t.Fatalf("expected 2 disabled users, got %+v", disabled)
		}
		for _, u := range disabled.Items {
			if !u.Disabled {
				t.Fatalf("filter leaked enabled user %+v", u)
			}
		}
		enabled, err := repo.List(ctx, repository.UserFilter{Disabled: ptr(false)}, repository.Page{Number: 1, Limit: 2})
		if err != nil {
			t.Fatalf("list enabled: %v", err)
		}
		if enabled.TotalItems != 3 || enabled.TotalPages != 2 || len(enabled.Items) != 2 {
			t.Fatalf("unexpected enabled page: %+v", enabled)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, users, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := users.Create(ctx, model.User{Name: "Tx", Email: "tx@example.com"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := users.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("error_is_returned", func(t *testing.T) {
		tx, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		marker := errors.New("boom")
		err := tx.WithinTx(context.Background(), func(ctx context.Context) error { return marker })
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
