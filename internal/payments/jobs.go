package payments

import (
	"context"
	"time"

	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

// SweeperJob periodically fails pending payments whose webhook never
// arrived, so abandoned checkouts do not hold the one-live-payment slot
// for their booking forever.
type SweeperJob struct {
	repo     Repository
	interval time.Duration
	ttl      time.Duration
	log      *logger.Logger
	done     chan struct{}
}

func NewSweeperJob(repo Repository, interval, ttl time.Duration, log *logger.Logger) *SweeperJob {
	return &SweeperJob{
		repo:     repo,
		interval: interval,
		ttl:      ttl,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start runs the sweeper until the context is cancelled or Stop is called.
func (j *SweeperJob) Start(ctx context.Context) {
	go j.run(ctx)
}

// Stop signals the sweeper to exit.
func (j *SweeperJob) Stop() {
	close(j.done)
}

func (j *SweeperJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SweeperJob) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.ttl)
	expired, err := j.repo.MarkStalePendingFailed(ctx, cutoff)
	if err != nil {
		j.log.WithError(err).Error("payment sweeper run failed")
		return
	}
	if expired > 0 {
		j.log.Info("expired stale pending payments", "count", expired)
	}
}
