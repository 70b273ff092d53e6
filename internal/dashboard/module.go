// Package dashboard provides the admin overview module.
package dashboard

import (
	"railspace_backend/internal/dashboard/handler"
	"railspace_backend/internal/dashboard/service"
	apphttp "railspace_backend/internal/http"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the dashboard module.
func NewModule(assets service.AssetSource, leases service.LeaseStats, applications service.ApplicationStats) *Module {
	return &Module{handler: handler.New(service.New(assets, leases, applications))}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts the dashboard route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/dashboard", m.handler.Overview)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
