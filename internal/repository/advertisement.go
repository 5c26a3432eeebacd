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

const advertisementsTable = "advertisements"

type AdvertisementRepository struct{}

func NewAdvertisementRepository() *AdvertisementRepository {
	return &AdvertisementRepository{}
}

func (r *AdvertisementRepository) GetByID(ctx context.Context, db database.DBTX, id int64) (*model.Advertisement, error) {
	query := `
		SELECT id, header, description, registration_time, owner
		FROM advertisements
		WHERE id = $1
	`

	ad := &model.Advertisement{}
	err := db.QueryRow(ctx, query, id).Scan(&ad.ID, &ad.Header, &ad.Description, &ad.RegistrationTime, &ad.Owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get advertisement %d: %w", id, sqlerr.NotFoundIn(advertisementsTable))
		}
		return nil, fmt.Errorf("get advertisement %d: %w", id, err)
	}

	return ad, nil
}

// Create inserts ad. The store assigns the id and registration time.
func (r *AdvertisementRepository) Create(ctx context.Context, db database.DBTX, ad *model.Advertisement) error {
	query := `
		INSERT INTO advertisements (header, description, owner)
		VALUES ($1, $2, $3)
		RETURNING id, registration_time
	`

	err := db.QueryRow(ctx, query, ad.Header, ad.Description, ad.Owner).Scan(&ad.ID, &ad.RegistrationTime)
	if err != nil {
		return fmt.Errorf("insert advertisement: %w", err)
	}

	return nil
}

func (r *AdvertisementRepository) Update(ctx context.Context, db database.DBTX, ad *model.Advertisement) error {
	query := `
		UPDATE advertisements
		SET header = $2, description = $3, registration_time = $4, owner = $5
		WHERE id = $1
	`

	tag, err := db.Exec(ctx, query, ad.ID, ad.Header, ad.Description, ad.RegistrationTime, ad.Owner)
	if err != nil {
		return fmt.Errorf("update advertisement %d: %w", ad.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update advertisement %d: %w", ad.ID, sqlerr.NotFoundIn(advertisementsTable))
	}

	return nil
}

func (r *AdvertisementRepository) Delete(ctx context.Context, db database.DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete advertisement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete advertisement %d: %w", id, sqlerr.NotFoundIn(advertisementsTable))
	}

	return nil
}
