package scheduler

import (
	"context"
	"time"

	leasetransport "railspace_backend/internal/leases/transport"
	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeaseExpirer runs the lease expiry sweep.
type LeaseExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) (leasetransport.ExpiryResult, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leases LeaseExpirer
	log    *logger.Logger
	now    func() time.Time
}

func NewWorker(cfg config.SchedulerConfig, leases LeaseExpirer, log *logger.Logger) (*Worker, error) {
	opt, queue, err := connection(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leases: leases,
		log:    log,
		now:    time.Now,
	}

	mux.HandleFunc(TaskExpireLeases, w.handleExpireLeases)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleExpireLeases(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseExpireLeasesPayload(task)
	if err != nil {
		return err
	}

	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = w.now()
	}

	result, err := w.leases.ExpireDue(ctx, asOf)
	if err != nil {
		w.log.Error("lease expiry sweep failed", "error", err, "activated", result.Activated, "expired", result.Expired)
		return err
	}
	w.log.Info("lease expiry sweep finished", "activated", result.Activated, "expired", result.Expired)
	return nil
}
