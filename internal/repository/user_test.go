package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{int64(4), "user3", "user3@mail.com", "$2a$10$hash"}}}

	user, err := NewUserRepository().GetByID(context.Background(), db, 4)

	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 4, Username: "user3", Email: "user3@mail.com", Password: "$2a$10$hash"}, user)
	assert.Equal(t, []any{int64(4)}, db.lastArgs)
	assert.Contains(t, db.lastSQL, "FROM users")
}

func TestUserRepository_GetByIDNullPassword(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{int64(4), "user3", "user3@mail.com", nil}}}

	user, err := NewUserRepository().GetByID(context.Background(), db, 4)

	require.NoError(t, err)
	assert.Empty(t, user.Password)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := NewUserRepository().GetByID(context.Background(), db, 9)

	require.Error(t, err)
	assert.True(t, sqlerr.IsNotFound(err))
	assert.Contains(t, err.Error(), "table:users")
}

func TestUserRepository_Create(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{int64(12)}}}
	user := &model.User{Username: "user3", Email: "user3@mail.com", Password: "hash"}

	require.NoError(t, NewUserRepository().Create(context.Background(), db, user))

	assert.Equal(t, int64(12), user.ID)
	assert.Equal(t, []any{"user3", "user3@mail.com", "hash"}, db.lastArgs)
	assert.Contains(t, db.lastSQL, "RETURNING id")
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "23505", TableName: "users"}}}

	err := NewUserRepository().Create(context.Background(), db, &model.User{Username: "user3"})

	assert.True(t, sqlerr.IsUniqueViolation(err))
}

func TestUserRepository_Update(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	user := &model.User{ID: 4, Username: "user101", Email: "user3@mail.com", Password: "hash"}

	require.NoError(t, NewUserRepository().Update(context.Background(), db, user))
	assert.Equal(t, []any{int64(4), "user101", "user3@mail.com", "hash"}, db.lastArgs)
}

func TestUserRepository_UpdateMissingRow(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")}

	err := NewUserRepository().Update(context.Background(), db, &model.User{ID: 4})

	assert.True(t, sqlerr.IsNotFound(err))
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()

	require.NoError(t, repo.Delete(context.Background(), &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}, 4))

	err := repo.Delete(context.Background(), &fakeDB{tag: pgconn.NewCommandTag("DELETE 0")}, 4)
	assert.True(t, sqlerr.IsNotFound(err))

	boom := errors.New("connection reset")
	err = repo.Delete(context.Background(), &fakeDB{execErr: boom}, 4)
	assert.ErrorIs(t, err, boom)
	assert.False(t, sqlerr.IsNotFound(err))
}
