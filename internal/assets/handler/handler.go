package handler

import (
	"net/http"
	"strings"

	"railspace_backend/internal/assets/service"
	"railspace_backend/internal/assets/transport"
	"railspace_backend/platform/httpkit"
	"railspace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for assets.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "Invalid request body"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid asset id"
)

// New creates a new asset handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the filtered listings.
// GET /api/v1/assets
func (h *Handler) List(c *gin.Context) {
	var query transport.ListAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	assets, err := h.svc.List(c.Request.Context(), query.Criteria())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AssetListResponse{Data: assets})
}

// Get returns one asset.
// GET /api/v1/assets/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	asset, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, asset)
}

// Create lists a new asset.
// POST /api/v1/admin/assets
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateAssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	asset, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": asset})
}

// Replace overwrites an asset.
// PUT /api/v1/admin/assets/:id
func (h *Handler) Replace(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}
	var req transport.CreateAssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	asset, err := h.svc.Replace(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, asset)
}

// Patch updates the provided fields of an asset.
// PATCH /api/v1/admin/assets/:id
func (h *Handler) Patch(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}
	var req transport.PatchAssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	asset, err := h.svc.Patch(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, asset)
}

// ToggleStatus flips an asset between Available and Leased.
// PATCH /api/v1/admin/assets/:id/toggle-status
func (h *Handler) ToggleStatus(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	asset, err := h.svc.ToggleStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, asset)
}

// Delete removes an asset.
// DELETE /api/v1/admin/assets/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Messages(err))
		return false
	}
	return true
}

func assetID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 64 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return "", false
	}
	return id, true
}
