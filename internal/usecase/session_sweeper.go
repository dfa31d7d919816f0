package usecase

import (
	"context"
	"time"

	"clinic-backend/internal/data/repository"

	"go.uber.org/zap"
)

// StartSessionSweeper deletes expired sessions on a fixed interval until ctx
// is cancelled. Expired sessions are already rejected at lookup time; the
// sweep only keeps the table from growing without bound.
func StartSessionSweeper(ctx context.Context, sessions repository.SessionRepository, interval time.Duration, log *zap.Logger) {
	log = log.With(zap.String("service", "session_sweeper"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.CleanExpiredSessions(ctx); err != nil {
				log.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}
}
