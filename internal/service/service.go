// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, runs each
// operation in its own transaction, and calls repository
// methods to interact with the data.
package service

import (
	"context"

	"github.com/deppfellow/ads-api/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// Transactor runs a unit of work. *database.Database satisfies it.
type Transactor interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

// WelcomeEnqueuer schedules the welcome email. *job.JobService satisfies it.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
