package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/ads-api/internal/database"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const usersTable = "users"

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID loads a user. A missing row is reported as a tagged pgx.ErrNoRows.
func (r *UserRepository) GetByID(ctx context.Context, db database.DBTX, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password
		FROM users
		WHERE id = $1
	`

	user := &model.User{}
	var password *string
	err := db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email, &password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get user %d: %w", id, sqlerr.NotFoundIn(usersTable))
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	if password != nil {
		user.Password = *password
	}

	return user, nil
}

// Create inserts user and stores the generated id on it.
func (r *UserRepository) Create(ctx context.Context, db database.DBTX, user *model.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := db.QueryRow(ctx, query, user.Username, user.Email, user.Password).Scan(&user.ID); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// Update writes every column of user back to its row.
func (r *UserRepository) Update(ctx context.Context, db database.DBTX, user *model.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, password = $4
		WHERE id = $1
	`

	tag, err := db.Exec(ctx, query, user.ID, user.Username, user.Email, user.Password)
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, sqlerr.NotFoundIn(usersTable))
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, db database.DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", id, sqlerr.NotFoundIn(usersTable))
	}

	return nil
}
