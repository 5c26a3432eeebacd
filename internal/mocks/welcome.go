package mocks

import (
	"context"
	"sync"
)

// WelcomeEnqueuer records welcome emails instead of queueing them.
type WelcomeEnqueuer struct {
	Err error

	mu         sync.Mutex
	Recipients []string
}

func (w *WelcomeEnqueuer) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Err != nil {
		return w.Err
	}
	w.Recipients = append(w.Recipients, to)
	return nil
}
