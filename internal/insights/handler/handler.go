package handler

import (
	"context"
	"net/http"

	"railspace_backend/internal/insights/service"
	"railspace_backend/platform/httpkit"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for model-backed insights.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new insights handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// VerifyDocument checks an uploaded identity document.
// POST /api/v1/insights/documents/verify
func (h *Handler) VerifyDocument(c *gin.Context) {
	handle(h, c, h.svc.VerifyDocument)
}

// ReportEncroachment triages a citizen encroachment report.
// POST /api/v1/insights/encroachment/report
func (h *Handler) ReportEncroachment(c *gin.Context) {
	handle(h, c, h.svc.ProcessEncroachmentReport)
}

// SuggestLeaseRate proposes a lease rate for an asset.
// POST /api/v1/admin/insights/lease-rate
func (h *Handler) SuggestLeaseRate(c *gin.Context) {
	handle(h, c, h.svc.SuggestLeaseRate)
}

// DetectEncroachment inspects a site photo.
// POST /api/v1/admin/insights/encroachment/detect
func (h *Handler) DetectEncroachment(c *gin.Context) {
	handle(h, c, h.svc.DetectEncroachment)
}

// PredictMaintenance forecasts warehouse maintenance.
// POST /api/v1/admin/insights/maintenance
func (h *Handler) PredictMaintenance(c *gin.Context) {
	handle(h, c, h.svc.PredictMaintenance)
}

// PredictHighRiskZones lists zones at risk of encroachment.
// POST /api/v1/admin/insights/risk-zones
func (h *Handler) PredictHighRiskZones(c *gin.Context) {
	handle(h, c, h.svc.PredictHighRiskZones)
}

// AssessRisk scores an ad hoc applicant description.
// POST /api/v1/admin/insights/risk
func (h *Handler) AssessRisk(c *gin.Context) {
	handle(h, c, h.svc.AssessRisk)
}

func handle[In, Out any](h *Handler, c *gin.Context, run func(context.Context, In) (Out, error)) {
	var req In
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Messages(err))
		return
	}

	result, err := run(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}
