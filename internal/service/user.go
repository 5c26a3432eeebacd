package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/ads-api/internal/database"
	"github.com/deppfellow/ads-api/internal/errs"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	GetByID(ctx context.Context, db database.DBTX, id int64) (*model.User, error)
	Create(ctx context.Context, db database.DBTX, user *model.User) error
	Update(ctx context.Context, db database.DBTX, user *model.User) error
	Delete(ctx context.Context, db database.DBTX, id int64) error
}

type UserService struct {
	tx      Transactor
	users   UserStore
	welcome WelcomeEnqueuer
	logger  *zerolog.Logger
}

// NewUserService wires the service. welcome may be nil when jobs are disabled.
func NewUserService(tx Transactor, users UserStore, welcome WelcomeEnqueuer, logger *zerolog.Logger) *UserService {
	return &UserService{
		tx:      tx,
		users:   users,
		welcome: welcome,
		logger:  logger,
	}
}

func userNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("User does not exist", true, nil)
}

func userConflict() *errs.HTTPError {
	code := sqlerr.ConflictCode("users")
	return errs.NewBadRequestError("user already exists", true, &code, nil)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.UserResponse, error) {
	var user *model.User

	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		var err error
		user, err = s.users.GetByID(ctx, db, id)
		return err
	})
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, userNotFound()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	res := user.Public()
	return &res, nil
}

// CreateUser stores a new user with a hashed password. The welcome email is
// queued only after the insert has committed.
func (s *UserService) CreateUser(ctx context.Context, payload *model.CreateUserPayload) (*model.CreatedResponse, error) {
	hashed, err := HashPassword(payload.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: hashed,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		return s.users.Create(ctx, db, user)
	})
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, userConflict()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.logger.Error().
				Err(err).
				Int64("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	return &model.CreatedResponse{ID: user.ID}, nil
}

// UpdateUser applies the non-empty fields of payload to the stored user.
func (s *UserService) UpdateUser(ctx context.Context, payload *model.UpdateUserPayload) (*model.StatusResponse, error) {
	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		user, err := s.users.GetByID(ctx, db, payload.ID)
		if err != nil {
			return err
		}

		if err := payload.ApplyTo(user, HashPassword); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		return s.users.Update(ctx, db, user)
	})
	if err != nil {
		switch {
		case sqlerr.IsNotFound(err):
			return nil, userNotFound()
		case sqlerr.IsUniqueViolation(err):
			return nil, userConflict()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return model.Success(), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (*model.StatusResponse, error) {
	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		if _, err := s.users.GetByID(ctx, db, id); err != nil {
			return err
		}
		return s.users.Delete(ctx, db, id)
	})
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, userNotFound()
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return model.Success(), nil
}
