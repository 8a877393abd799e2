package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/users-service/internal/model"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/rs/zerolog"
)

// userService holds user use-case logic: validation + orchestration, no transport / SQL details.
type userService struct {
	repo     repository.UserRepository
	tx       repository.TxManager
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUserService(repo repository.UserRepository, tx repository.TxManager, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{repo: repo, tx: tx, validate: validator.New(), log: l}
}

// ListUsers fetches the page and its count inside one transaction so both
// reads observe the same data.
func (s *userService) ListUsers(ctx context.Context, filter repository.UserFilter, page repository.Page) (repository.PageResult[model.User], error) {
	p := normalizePage(page)
	var res repository.PageResult[model.User]
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err := s.repo.List(ctx, filter, p)
		if err != nil {
			return err
		}
		res = out
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Number).Int("limit", p.Limit).Msg("list users failed")
		return repository.PageResult[model.User]{}, err
	}
	return res, nil
}

func (s *userService) CreateUser(ctx context.Context, name, email string) (model.User, error) {
	start := time.Now()
	in := createUserInput{Name: strings.TrimSpace(name), Email: NormalizeEmail(email)}

	if err := s.validate.Struct(in); err != nil {
		ferrs := validationFieldErrors(err)
		s.log.Debug().Str("name_raw", name).Str("email_raw", email).Interface("field_errors", ferrs).Msg("user validation failed")
		return model.User{}, NewInvalidInputError(ferrs)
	}

	// No read-before-write: the storage uniqueness constraint is the single
	// source of the duplicate signal, so concurrent creates cannot both pass.
	out, err := s.repo.Create(ctx, model.User{Name: in.Name, Email: in.Email})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			s.log.Debug().Str("email", in.Email).Msg("duplicate email rejected")
			return model.User{}, NewInvalidInputError([]FieldError{{Field: "email", Message: MsgEmailTaken}})
		}
		s.log.Error().Err(err).Str("email", in.Email).Msg("create user failed")
		return model.User{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("user_id", out.ID).Msg("user created")
	return out, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (model.User, error) {
	if id <= 0 {
		return model.User{}, NewInvalidInputError([]FieldError{{Field: "id", Message: MsgIDInvalid}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	email = NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return model.User{}, NewInvalidInputError([]FieldError{{Field: "email", Message: MsgEmailInvalid}})
	}
	return s.repo.GetByEmail(ctx, email)
}

// UpdateUser applies only the supplied fields. An empty patch is a read.
func (s *userService) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: MsgIDInvalid})
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			ferrs = append(ferrs, FieldError{Field: "name", Message: MsgNameInvalid})
		}
		patch.Name = &trimmed
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Int64("user_id", id).Interface("field_errors", ferrs).Msg("user update validation failed")
		return model.User{}, err
	}

	if patch.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}

	out, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		// absence is an expected outcome; anything else is worth an error log
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("user_id", id).Msg("update user failed")
		}
		return model.User{}, err
	}
	return out, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: MsgIDInvalid}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("user_id", id).Msg("delete user failed")
		}
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
