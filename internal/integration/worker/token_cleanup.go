// Package worker runs periodic background maintenance.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/integration/persistence"
)

// TokenCleanupWorker deletes expired refresh tokens.
type TokenCleanupWorker struct {
	tokens   persistence.TokenRepository
	clock    adapter.Clock
	interval time.Duration
}

// NewTokenCleanupWorker creates a worker running every interval.
func NewTokenCleanupWorker(tokens persistence.TokenRepository, clock adapter.Clock, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		tokens:   tokens,
		clock:    clock,
		interval: interval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	slog.Info("Token cleanup worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Token cleanup worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce deletes the tokens expired as of now and returns how many were removed.
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) int64 {
	deleted, err := w.tokens.DeleteExpired(ctx, w.clock.Now())
	if err != nil {
		slog.Error("Failed to delete expired refresh tokens", "error", err)
		return 0
	}
	if deleted > 0 {
		slog.Info("Expired refresh tokens deleted", "count", deleted)
	}
	return deleted
}
