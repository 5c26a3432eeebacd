package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/ads-api/internal/database"
	"github.com/deppfellow/ads-api/internal/errs"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
)

// AdvertisementStore is the persistence the advertisement service needs.
type AdvertisementStore interface {
	GetByID(ctx context.Context, db database.DBTX, id int64) (*model.Advertisement, error)
	Create(ctx context.Context, db database.DBTX, ad *model.Advertisement) error
	Update(ctx context.Context, db database.DBTX, ad *model.Advertisement) error
	Delete(ctx context.Context, db database.DBTX, id int64) error
}

type AdvertisementService struct {
	tx  Transactor
	ads AdvertisementStore
}

func NewAdvertisementService(tx Transactor, ads AdvertisementStore) *AdvertisementService {
	return &AdvertisementService{
		tx:  tx,
		ads: ads,
	}
}

func advertisementNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Advertisement does not exist", true, nil)
}

func (s *AdvertisementService) GetAdvertisement(ctx context.Context, id int64) (*model.AdvertisementResponse, error) {
	var ad *model.Advertisement

	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		var err error
		ad, err = s.ads.GetByID(ctx, db, id)
		return err
	})
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, advertisementNotFound()
		}
		return nil, fmt.Errorf("failed to get advertisement: %w", err)
	}

	res := ad.Public()
	return &res, nil
}

// CreateAdvertisement inserts a new advertisement. An unknown owner is left
// to the foreign key and surfaces as a server error.
func (s *AdvertisementService) CreateAdvertisement(ctx context.Context, payload *model.CreateAdvertisementPayload) (*model.CreatedResponse, error) {
	ad := &model.Advertisement{
		Header:      payload.Header,
		Description: payload.Description,
		Owner:       payload.Owner,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		return s.ads.Create(ctx, db, ad)
	})
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			code := sqlerr.ConflictCode("advertisements")
			return nil, errs.NewBadRequestError("Advertisement already exists", true, &code, nil)
		}
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}

	return &model.CreatedResponse{ID: ad.ID}, nil
}

func (s *AdvertisementService) UpdateAdvertisement(ctx context.Context, payload *model.UpdateAdvertisementPayload) (*model.StatusResponse, error) {
	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		ad, err := s.ads.GetByID(ctx, db, payload.ID)
		if err != nil {
			return err
		}

		if err := payload.ApplyTo(ad); err != nil {
			return err
		}

		return s.ads.Update(ctx, db, ad)
	})
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, advertisementNotFound()
		}
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}

	return model.Success(), nil
}

func (s *AdvertisementService) DeleteAdvertisement(ctx context.Context, id int64) (*model.StatusResponse, error) {
	err := s.tx.WithTx(ctx, func(ctx context.Context, db database.DBTX) error {
		if _, err := s.ads.GetByID(ctx, db, id); err != nil {
			return err
		}
		return s.ads.Delete(ctx, db, id)
	})
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, advertisementNotFound()
		}
		return nil, fmt.Errorf("failed to delete advertisement: %w", err)
	}

	return model.Success(), nil
}
