// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"railspace_backend/internal/events"
	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.AdminConfig
	config.AuthProviderConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Redis backs the shared rate limiter for model-backed routes. Optional.
	Redis *redis.Client
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
