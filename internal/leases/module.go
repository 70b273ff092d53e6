// Package leases provides the lease lifecycle module.
package leases

import (
	"railspace_backend/internal/events"
	apphttp "railspace_backend/internal/http"
	"railspace_backend/internal/leases/handler"
	"railspace_backend/internal/leases/repository"
	"railspace_backend/internal/leases/service"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leases bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates the leases module.
func NewModule(pool *pgxpool.Pool, assets service.AssetStatusWriter, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, assets, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leases"
}

// Service returns the service layer for other modules and the scheduler.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lease routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/leases/mine", m.handler.Mine)

	admin := ctx.Admin.Group("/leases")
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
