package scheduler

import (
	"context"
	"fmt"
	"time"

	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const defaultLeaseExpiryCron = "@every 1h"

// Periodic registers the recurring tasks with asynq's cron scheduler.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, queue, err := connection(cfg)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("periodic task enqueue failed", "error", err)
				return
			}
			log.Debug("periodic task enqueued", "task", info.Type, "id", info.ID)
		},
	})

	cron := cfg.GetLeaseExpiryCron()
	if cron == "" {
		cron = defaultLeaseExpiryCron
	}

	task, err := NewExpireLeasesTask(ExpireLeasesPayload{})
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(cron, task, asynq.Queue(queue))
	if err != nil {
		return nil, fmt.Errorf("register %s with cron %q: %w", TaskExpireLeases, cron, err)
	}
	log.Info("periodic task registered", "task", TaskExpireLeases, "cron", cron, "entry", entryID)

	return &Periodic{scheduler: scheduler, log: log}, nil
}

// Run blocks until ctx is cancelled.
func (p *Periodic) Run(ctx context.Context) error {
	if err := p.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	p.scheduler.Shutdown()
	return nil
}

// Sweeper runs the expiry sweep on a ticker inside the API process. Used
// when no Redis is configured for the asynq scheduler.
type Sweeper struct {
	leases   LeaseExpirer
	log      *logger.Logger
	interval time.Duration
}

func NewSweeper(leases LeaseExpirer, log *logger.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{leases: leases, log: log, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context) {
	if s == nil || s.leases == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	result, err := s.leases.ExpireDue(ctx, time.Now())
	if err != nil {
		s.log.Warn("lease expiry sweep failed", "error", err)
		return
	}
	if result.Activated > 0 || result.Expired > 0 {
		s.log.Info("lease expiry sweep updated leases", "activated", result.Activated, "expired", result.Expired)
	}
}
