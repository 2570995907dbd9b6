package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/askarovb/auth-service/internal/metrics"
	"github.com/askarovb/auth-service/internal/repository"
	"github.com/robfig/cron/v3"
)

const purgeBatchSize = 500

// Reaper clears expired password-reset tokens on a cron schedule.
// It is hygiene only: the reset lookup already refuses expired tokens,
// so correctness never depends on a reaper cycle having run.
type Reaper struct {
	users    repository.UserRepository
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewReaper parses a standard 5-field cron expression for the purge
// schedule.
func NewReaper(users repository.UserRepository, cronExpr string, logger *slog.Logger) (*Reaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Reaper{
		users:    users,
		schedule: schedule,
		logger:   logger.With("component", "reaper"),
	}, nil
}

func (r *Reaper) Start(ctx context.Context) {
	r.logger.Info("reaper started")

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("reaper shut down")
			return
		case <-timer.C:
			r.reap(ctx)
		}
	}
}

func (r *Reaper) reap(ctx context.Context) {
	start := time.Now()

	purged, err := r.users.ClearExpiredResetTokens(ctx, start, purgeBatchSize)
	if err != nil {
		r.logger.Error("reaper: clear expired reset tokens", "error", err)
		return
	}

	metrics.ReaperCycleDuration.Observe(time.Since(start).Seconds())
	if purged > 0 {
		metrics.ReaperPurgedTotal.Add(float64(purged))
		r.logger.Info("reaper: cleared expired reset tokens", "count", purged)
	}
}
