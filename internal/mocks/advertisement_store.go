package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/ads-api/internal/database"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

// AdvertisementStore is an in-memory service.AdvertisementStore.
//
// When Users is set, owners must exist there and owning users cannot be
// deleted, mirroring the foreign key.
type AdvertisementStore struct {
	Users *UserStore
	Now   func() time.Time
	Err   error

	mu     sync.Mutex
	rows   map[int64]model.Advertisement
	nextID int64
}

// NewAdvertisementStore links the store to users in both directions.
func NewAdvertisementStore(users *UserStore) *AdvertisementStore {
	s := &AdvertisementStore{
		Users: users,
		Now:   time.Now,
		rows:  make(map[int64]model.Advertisement),
	}
	if users != nil {
		users.Owners = s
	}
	return s
}

// OwnedBy reports whether any stored advertisement references user id.
func (s *AdvertisementStore) OwnedBy(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Owner != nil && *row.Owner == id {
			return true
		}
	}
	return false
}

func (s *AdvertisementStore) checkOwner(ad *model.Advertisement) error {
	if s.Users == nil || ad.Owner == nil || s.Users.Exists(*ad.Owner) {
		return nil
	}
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "insert or update on table \"advertisements\" violates foreign key constraint \"advertisements_owner_fkey\"",
		TableName:      "advertisements",
		ConstraintName: "advertisements_owner_fkey",
	}
}

func (s *AdvertisementStore) GetByID(ctx context.Context, db database.DBTX, id int64) (*model.Advertisement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.NotFoundIn("advertisements")
	}
	return &row, nil
}

func (s *AdvertisementStore) Create(ctx context.Context, db database.DBTX, ad *model.Advertisement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if err := s.checkOwner(ad); err != nil {
		return err
	}
	s.nextID++
	ad.ID = s.nextID
	ad.RegistrationTime = s.Now().UTC()
	s.rows[ad.ID] = *ad
	return nil
}

func (s *AdvertisementStore) Update(ctx context.Context, db database.DBTX, ad *model.Advertisement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[ad.ID]; !ok {
		return sqlerr.NotFoundIn("advertisements")
	}
	if err := s.checkOwner(ad); err != nil {
		return err
	}
	s.rows[ad.ID] = *ad
	return nil
}

func (s *AdvertisementStore) Delete(ctx context.Context, db database.DBTX, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return sqlerr.NotFoundIn("advertisements")
	}
	delete(s.rows, id)
	return nil
}
