// Package applications provides the lease application module.
package applications

import (
	"railspace_backend/internal/applications/handler"
	"railspace_backend/internal/applications/repository"
	"railspace_backend/internal/applications/service"
	"railspace_backend/internal/events"
	apphttp "railspace_backend/internal/http"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the applications bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates the applications module. risk may be nil when no model
// provider is configured.
func NewModule(
	pool *pgxpool.Pool,
	assets service.AssetCatalog,
	leases service.LeaseWriter,
	risk service.RiskAssessor,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, assets, leases, risk, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "applications"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts application routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/applications", m.handler.Submit)
	ctx.Protected.GET("/applications/mine", m.handler.Mine)

	admin := ctx.Admin.Group("/applications")
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.Get)
	admin.POST("/:id/review", m.handler.Review)
	admin.POST("/:id/assess-risk", m.handler.AssessRisk)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
