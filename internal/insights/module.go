// Package insights provides the model-backed insight module.
package insights

import (
	"railspace_backend/internal/insights/handler"
	"railspace_backend/internal/insights/service"
	apphttp "railspace_backend/internal/http"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"
)

// Module is the insights bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the insights module. gen may be nil; every route then
// answers 503.
func NewModule(gen service.Generator, val *validator.Validator, log *logger.Logger) *Module {
	if gen == nil {
		log.Warn("model provider not configured, insight routes will answer 503")
	}
	svc := service.New(gen, val, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "insights"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts insight routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.Protected.Group("/insights")
	public.Use(ctx.AIRateLimit)
	public.POST("/documents/verify", m.handler.VerifyDocument)
	public.POST("/encroachment/report", m.handler.ReportEncroachment)

	admin := ctx.Admin.Group("/insights")
	admin.Use(ctx.AIRateLimit)
	admin.POST("/risk", m.handler.AssessRisk)
	admin.POST("/lease-rate", m.handler.SuggestLeaseRate)
	admin.POST("/encroachment/detect", m.handler.DetectEncroachment)
	admin.POST("/maintenance", m.handler.PredictMaintenance)
	admin.POST("/risk-zones", m.handler.PredictHighRiskZones)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
