package workers

import (
	"context"
	"time"

	"fichaje_backend/internal/logger"

	"gorm.io/gorm"
)

// RecoveryWorker sweeps stale recovery codes in the background.
type RecoveryWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewRecoveryWorker(db *gorm.DB) *RecoveryWorker {
	return &RecoveryWorker{db: db, interval: time.Hour}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (w *RecoveryWorker) Start(ctx context.Context) {
	go w.purgeStaleCodes(ctx)
}

// purgeStaleCodes deletes codes issued before today. Today's rows stay put,
// expired or used, so the one-code-per-day limit keeps holding.
func (w *RecoveryWorker) purgeStaleCodes(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Recovery code worker stopped")
			return
		case <-ticker.C:
			today := time.Now().Format("2006-01-02")
			result := w.db.Exec(
				"DELETE FROM recovery_codes WHERE issued_on < ?",
				today,
			)
			if result.Error != nil {
				logger.Error("Failed to purge stale recovery codes", "error", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Purged stale recovery codes", "count", result.RowsAffected)
			}
		}
	}
}
