package mocks

import (
	"context"
	"sync"

	"github.com/deppfellow/ads-api/internal/database"
)

// Transactor runs units of work without a database and counts their outcomes.
type Transactor struct {
	// BeginErr, when set, fails every unit of work before fn runs.
	BeginErr error

	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (t *Transactor) WithTx(ctx context.Context, fn database.TxFunc) error {
	if t.BeginErr != nil {
		return t.BeginErr
	}

	err := fn(ctx, nil)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.rollbacks++
	} else {
		t.commits++
	}
	return err
}

func (t *Transactor) Commits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.commits
}

func (t *Transactor) Rollbacks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rollbacks
}
