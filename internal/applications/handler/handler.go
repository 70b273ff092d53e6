package handler

import (
	"net/http"

	"railspace_backend/internal/applications/service"
	"railspace_backend/internal/applications/transport"
	"railspace_backend/platform/httpkit"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for lease applications.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid application id"
)

// New creates a new application handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit files a lease application for the signed-in applicant.
// POST /api/v1/applications
func (h *Handler) Submit(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Messages(err))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), applicantOf(identity), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": result})
}

// Mine lists the signed-in applicant's applications.
// GET /api/v1/applications/mine
func (h *Handler) Mine(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Mine(c.Request.Context(), applicantOf(identity))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// List lists applications.
// GET /api/v1/admin/applications
func (h *Handler) List(c *gin.Context) {
	var req transport.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one application.
// GET /api/v1/admin/applications/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}

// Review approves or rejects an application.
// POST /api/v1/admin/applications/:id/review
func (h *Handler) Review(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Review(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}

// AssessRisk runs the risk model on an application.
// POST /api/v1/admin/applications/:id/assess-risk
func (h *Handler) AssessRisk(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.AssessRisk(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}

func applicantOf(identity httpkit.Identity) service.Applicant {
	userID := identity.UserID()
	return service.Applicant{UserID: &userID, Email: identity.Email()}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
