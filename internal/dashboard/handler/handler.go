package handler

import (
	"railspace_backend/internal/dashboard/service"
	"railspace_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin dashboard.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Overview returns asset, lease and application totals.
// GET /api/v1/admin/dashboard
func (h *Handler) Overview(c *gin.Context) {
	result, err := h.svc.Overview(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}
