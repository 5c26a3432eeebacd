// Package model defines the persisted entities, the request payloads
// accepted for them and the projections returned to clients.
package model

import (
	"fmt"
	"time"
)

// CreatedResponse is returned after a successful insert.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// StatusResponse is returned by PATCH and DELETE.
type StatusResponse struct {
	Status string `json:"status"`
}

// Success is the body of every successful PATCH and DELETE.
func Success() *StatusResponse {
	return &StatusResponse{Status: "success"}
}

// ByIDPayload addresses a single row through the :id path parameter.
type ByIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *ByIDPayload) Validate() error {
	return nil
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 timestamp, with or without a zone offset.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// nonEmpty reports whether an optional string carries a value worth applying.
func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
