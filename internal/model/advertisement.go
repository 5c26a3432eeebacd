package model

import (
	"time"

	"github.com/deppfellow/ads-api/internal/validation"
)

// Advertisement is a row of the advertisements table.
type Advertisement struct {
	ID               int64
	Header           string
	Description      string
	RegistrationTime time.Time
	Owner            *int64
}

// AdvertisementResponse is the public projection of an Advertisement.
type AdvertisementResponse struct {
	Header           string `json:"header"`
	RegistrationTime string `json:"registration_time"`
	Description      string `json:"description"`
	Owner            *int64 `json:"owner"`
}

func (a *Advertisement) Public() AdvertisementResponse {
	return AdvertisementResponse{
		Header:           a.Header,
		RegistrationTime: a.RegistrationTime.Format(time.RFC3339Nano),
		Description:      a.Description,
		Owner:            a.Owner,
	}
}

// CreateAdvertisementPayload is the body of POST /advertisement.
// The owner is not checked here; the foreign key decides.
type CreateAdvertisementPayload struct {
	Header      string `json:"header" validate:"required,max=64"`
	Description string `json:"description" validate:"required"`
	Owner       *int64 `json:"owner" validate:"required"`
}

func (p *CreateAdvertisementPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateAdvertisementPayload is the body of PATCH /advertisement/:id.
type UpdateAdvertisementPayload struct {
	ID               int64   `param:"id" json:"-"`
	Header           *string `json:"header" validate:"omitempty,max=64"`
	Description      *string `json:"description"`
	Owner            *int64  `json:"owner"`
	RegistrationTime *string `json:"registration_time"`
}

func (p *UpdateAdvertisementPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	if nonEmpty(p.RegistrationTime) {
		if _, err := ParseTimestamp(*p.RegistrationTime); err != nil {
			return validation.CustomValidationErrors{
				{Field: "registration_time", Message: "must be an ISO-8601 timestamp"},
			}
		}
	}

	return nil
}

// ApplyTo copies every non-empty field onto a. A zero owner counts as empty.
func (p *UpdateAdvertisementPayload) ApplyTo(a *Advertisement) error {
	if nonEmpty(p.Header) {
		a.Header = *p.Header
	}
	if nonEmpty(p.Description) {
		a.Description = *p.Description
	}
	if p.Owner != nil && *p.Owner != 0 {
		owner := *p.Owner
		a.Owner = &owner
	}
	if nonEmpty(p.RegistrationTime) {
		t, err := ParseTimestamp(*p.RegistrationTime)
		if err != nil {
			return err
		}
		a.RegistrationTime = t
	}
	return nil
}
