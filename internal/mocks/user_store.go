package mocks

import (
	"context"
	"sync"

	"github.com/deppfellow/ads-api/internal/database"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserStore is an in-memory service.UserStore.
type UserStore struct {
	// Err, when set, is returned by every method.
	Err error

	// Owners, when set, blocks deleting users that still own
	// advertisements, mirroring the advertisements.owner foreign key.
	Owners interface{ OwnedBy(id int64) bool }

	mu     sync.Mutex
	rows   map[int64]model.User
	nextID int64
}

func NewUserStore() *UserStore {
	return &UserStore{rows: make(map[int64]model.User)}
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	}
}

// conflict reports the constraint u would violate, ignoring the row with u's own id.
func (s *UserStore) conflict(u *model.User) error {
	for id, row := range s.rows {
		if id == u.ID {
			continue
		}
		if row.Username == u.Username {
			return uniqueViolation("users", "users_username_key")
		}
		if row.Email == u.Email {
			return uniqueViolation("users", "users_email_key")
		}
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, db database.DBTX, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.NotFoundIn("users")
	}
	return &row, nil
}

func (s *UserStore) Create(ctx context.Context, db database.DBTX, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	user.ID = 0
	if err := s.conflict(user); err != nil {
		return err
	}
	s.nextID++
	user.ID = s.nextID
	s.rows[user.ID] = *user
	return nil
}

func (s *UserStore) Update(ctx context.Context, db database.DBTX, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[user.ID]; !ok {
		return sqlerr.NotFoundIn("users")
	}
	if err := s.conflict(user); err != nil {
		return err
	}
	s.rows[user.ID] = *user
	return nil
}

func (s *UserStore) Delete(ctx context.Context, db database.DBTX, id int64) error {
	// Checked before taking s.mu: the advertisement store locks the other way round.
	owned := s.Owners != nil && s.Owners.OwnedBy(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return sqlerr.NotFoundIn("users")
	}
	if owned {
		return &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23503",
			Message:        "update or delete on table \"users\" violates foreign key constraint \"advertisements_owner_fkey\" on table \"advertisements\"",
			TableName:      "advertisements",
			ConstraintName: "advertisements_owner_fkey",
		}
	}
	delete(s.rows, id)
	return nil
}

// Exists reports whether a user with id is stored.
func (s *UserStore) Exists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok
}

// Row returns a copy of the stored user.
func (s *UserStore) Row(id int64) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	return row, ok
}
