package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railspace_backend/internal/adapters"
	"railspace_backend/internal/applications"
	appsvc "railspace_backend/internal/applications/service"
	"railspace_backend/internal/assets"
	"railspace_backend/internal/dashboard"
	"railspace_backend/internal/email"
	"railspace_backend/internal/events"
	apphttp "railspace_backend/internal/http"
	"railspace_backend/internal/http/router"
	"railspace_backend/internal/insights"
	insightsvc "railspace_backend/internal/insights/service"
	"railspace_backend/internal/leases"
	leasesvc "railspace_backend/internal/leases/service"
	"railspace_backend/internal/notification"
	"railspace_backend/internal/scheduler"
	"railspace_backend/platform/ai/gemini"
	"railspace_backend/platform/config"
	"railspace_backend/platform/db"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	pool := initDatabase(ctx, cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	redisClient := initRedis(ctx, cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	notification.New(email.NewSender(cfg), log).RegisterHandlers(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	assetsModule, err := assets.NewModule(pool, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize assets module", "error", err)
		panic("failed to initialize assets module: " + err.Error())
	}

	insightsModule := insights.NewModule(initGenerator(ctx, cfg, log), val, log)

	modules := []apphttp.Module{assetsModule, insightsModule}

	var (
		leasesModule       *leases.Module
		applicationsModule *applications.Module
	)
	if pool != nil {
		leasesModule = leases.NewModule(pool, assetsModule.Service(), eventBus, val, log)
		applicationsModule = applications.NewModule(
			pool,
			adapters.NewApplicationAssetCatalog(assetsModule.Service()),
			adapters.NewApplicationLeaseWriter(leasesModule.Service()),
			adapters.NewRiskAssessor(insightsModule.Service()),
			eventBus,
			val,
			log,
		)
		modules = append(modules, leasesModule, applicationsModule)

		if redisClient == nil {
			// Without Redis the asynq scheduler cannot run; sweep in-process.
			go scheduler.NewSweeper(leasesModule.Service(), log, time.Hour).Run(ctx)
		}
	} else {
		log.Warn("DATABASE_URL not configured; applications and leases are disabled")
	}

	modules = append(modules, dashboard.NewModule(
		assetsModule.Service(),
		adapters.NewDashboardLeaseStats(leaseService(leasesModule)),
		adapters.NewDashboardApplicationStats(applicationService(applicationsModule)),
	))

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Redis:    redisClient,
		Modules:  modules,
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
	if !cfg.IsDatabaseConfigured() {
		log.Warn("DATABASE_URL not configured; serving fallback asset data")
		return nil
	}

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")
	return pool
}

func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; using in-process rate limits")
		return nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; using in-process rate limits", "error", err)
		return nil
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("redis unreachable; using in-process rate limits", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

func initGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) insightsvc.Generator {
	if !cfg.IsAIEnabled() {
		return nil
	}
	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.GetGeminiAPIKey(),
		Model:  cfg.GetGeminiModel(),
	})
	if err != nil {
		log.Error("failed to initialize model provider", "error", err)
		return nil
	}
	log.Info("model provider configured", "model", client.Model())
	return client
}

func leaseService(m *leases.Module) *leasesvc.Service {
	if m == nil {
		return nil
	}
	return m.Service()
}

func applicationService(m *applications.Module) *appsvc.Service {
	if m == nil {
		return nil
	}
	return m.Service()
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
