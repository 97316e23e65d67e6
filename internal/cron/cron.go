package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const cleanupInterval = 24 * time.Hour

// AuditCleaner deletes audit rows older than the given number of days.
type AuditCleaner interface {
	CleanupOldLogs(days int) (int64, error)
}

// StartCleanupTask runs the audit cleanup once now and then every 24 hours
// until ctx is cancelled.
func StartCleanupTask(ctx context.Context, cleaner AuditCleaner, retentionDays int, log *zap.Logger) {
	go runCleanup(ctx, cleaner, retentionDays, cleanupInterval, log)
}

func runCleanup(ctx context.Context, cleaner AuditCleaner, retentionDays int, interval time.Duration, log *zap.Logger) {
	log.Info("starting background cleanup task", zap.Int("retention_days", retentionDays))

	cleanupOnce(cleaner, retentionDays, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("cleanup task stopped")
			return
		case <-ticker.C:
			cleanupOnce(cleaner, retentionDays, log)
		}
	}
}

func cleanupOnce(cleaner AuditCleaner, retentionDays int, log *zap.Logger) {
	n, err := cleaner.CleanupOldLogs(retentionDays)
	if err != nil {
		log.Error("failed to cleanup old audit logs", zap.Error(err))
		return
	}
	log.Info("audit log cleanup completed", zap.Int64("deleted", n))
}
