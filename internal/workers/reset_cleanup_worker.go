package workers

import (
	"context"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
)

// ResetCleanupWorker purges used and expired password reset codes hourly.
type ResetCleanupWorker struct {
	resets   repositories.PasswordResetRepository
	interval time.Duration
}

func NewResetCleanupWorker(resets repositories.PasswordResetRepository) *ResetCleanupWorker {
	return &ResetCleanupWorker{resets: resets, interval: time.Hour}
}

func (w *ResetCleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ResetCleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reset cleanup worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.resets.DeleteDead(time.Now())
			if err != nil {
				logger.Error("Error purging dead reset codes", "error", err)
			} else if deleted > 0 {
				logger.Info("Purged dead reset codes", "count", deleted)
			}
		}
	}
}
