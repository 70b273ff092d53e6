// Package assets provides the asset listing and administration module.
package assets

import (
	"railspace_backend/internal/assets/handler"
	"railspace_backend/internal/assets/repository"
	"railspace_backend/internal/assets/service"
	"railspace_backend/internal/events"
	apphttp "railspace_backend/internal/http"
	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the assets bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the assets module. A nil pool serves the bundled
// fallback listings read-only.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg config.AssetsConfig, log *logger.Logger) (*Module, error) {
	var (
		reader repository.Reader
		writer repository.Writer
	)
	if pool != nil {
		repo := repository.New(pool)
		reader, writer = repo, repo
	} else {
		fallback, err := repository.NewFallback()
		if err != nil {
			return nil, err
		}
		reader = fallback
		log.Warn("asset store not configured, serving bundled fallback listings")
	}

	svc := service.New(reader, writer, eventBus, cfg.GetAssetStoreTimeout(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assets"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts asset routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/assets", m.handler.List)
	ctx.V1.GET("/assets/:id", m.handler.Get)

	admin := ctx.Admin.Group("/assets")
	admin.POST("", m.handler.Create)
	admin.PUT("/:id", m.handler.Replace)
	admin.PATCH("/:id", m.handler.Patch)
	admin.PATCH("/:id/toggle-status", m.handler.ToggleStatus)
	admin.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
