package handler

import (
	"net/http"

	"railspace_backend/internal/leases/service"
	"railspace_backend/internal/leases/transport"
	"railspace_backend/platform/httpkit"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for leases.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lease id"
)

// New creates a new lease handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List lists leases.
// GET /api/v1/admin/leases
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeasesRequest
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

// Get returns one lease.
// GET /api/v1/admin/leases/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}

// Mine lists the leases held by the signed-in applicant.
// GET /api/v1/leases/mine
func (h *Handler) Mine(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListForHolder(c.Request.Context(), identity.Email())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
