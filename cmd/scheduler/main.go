package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railspace_backend/internal/assets"
	"railspace_backend/internal/email"
	"railspace_backend/internal/events"
	"railspace_backend/internal/leases"
	"railspace_backend/internal/notification"
	"railspace_backend/internal/scheduler"
	"railspace_backend/platform/config"
	"railspace_backend/platform/db"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if !cfg.IsDatabaseConfigured() {
		panic("scheduler requires DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	notification.New(email.NewSender(cfg), log).RegisterHandlers(eventBus)

	val := validator.New()

	// Worker-side lease wiring (no HTTP handlers required).
	assetsModule, err := assets.NewModule(pool, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize assets module", "error", err)
		panic("failed to initialize assets module: " + err.Error())
	}
	leasesModule := leases.NewModule(pool, assetsModule.Service(), eventBus, val, log)

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	go func() {
		if err := periodic.Run(ctx); err != nil {
			log.Error("periodic scheduler stopped", "error", err)
			stop()
		}
	}()

	worker, err := scheduler.NewWorker(cfg, leasesModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
