package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/middleware"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/utils"
)

// VendorHandler handles vendor endpoints, both the public storefront surface
// and the admin management surface
type VendorHandler struct {
	vendorUsecase *usecases.VendorUsecase
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorUsecase *usecases.VendorUsecase) *VendorHandler {
	return &VendorHandler{vendorUsecase: vendorUsecase}
}

// CreateVendor onboards a store, creating the owner account when needed
// POST /api/v1/admin/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var input entities.CreateVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.vendorUsecase.CreateVendor(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if !result.UserCreated {
		status = http.StatusOK
	}
	response.Success(c, status, "vendor saved", result)
}

// RegisterVendor opens a pending vendor application for the logged-in user
// POST /api/v1/vendors/register
func (h *VendorHandler) RegisterVendor(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.RegisterVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vendor, err := h.vendorUsecase.RegisterVendor(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "application submitted", vendor)
}

// GetMyStore returns the vendor account linked to the logged-in user
// GET /api/v1/vendor/store
func (h *VendorHandler) GetMyStore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	vendor, err := h.vendorUsecase.GetVendorByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", vendor)
}

// GetVendorBySlug returns a storefront by its public slug
// GET /api/v1/stores/:slug
func (h *VendorHandler) GetVendorBySlug(c *gin.Context) {
	vendor, err := h.vendorUsecase.GetVendorBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", vendor)
}

// GetVendor returns a vendor by id
// GET /api/v1/admin/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	vendor, err := h.vendorUsecase.GetVendor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", vendor)
}

// ListVendors lists vendors with optional status filter
// GET /api/v1/admin/vendors?status=PENDING&page=1&limit=20
func (h *VendorHandler) ListVendors(c *gin.Context) {
	p := pagination(c)
	status := entities.VendorStatus(c.Query("status"))

	vendors, total, err := h.vendorUsecase.ListVendors(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", vendors, utils.CalculateMeta(total, p.Page, p.Limit))
}

// UpdateVendorStatus transitions the vendor lifecycle state
// PATCH /api/v1/admin/vendors/:id/status
func (h *VendorHandler) UpdateVendorStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateVendorStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vendor, err := h.vendorUsecase.UpdateVendorStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "status updated", vendor)
}

// DeleteVendor removes the vendor record, keeping products and the owner
// user account
// DELETE /api/v1/admin/vendors/:id
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	adminID, _ := middleware.GetUserID(c)

	if err := h.vendorUsecase.DeleteVendor(c.Request.Context(), adminID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vendor deleted", nil)
}

// DeleteVendorPermanent removes the vendor together with its products, and
// optionally the owner account
// DELETE /api/v1/admin/vendors/:id/permanent?deleteUser=true
func (h *VendorHandler) DeleteVendorPermanent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	adminID, _ := middleware.GetUserID(c)
	deleteUser, _ := strconv.ParseBool(c.Query("deleteUser"))

	if err := h.vendorUsecase.DeleteVendorPermanent(c.Request.Context(), adminID, id, deleteUser); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vendor permanently deleted", nil)
}

// DeleteAllVendors wipes every vendor record. Destructive, admin-only.
// DELETE /api/v1/admin/vendors
func (h *VendorHandler) DeleteAllVendors(c *gin.Context) {
	adminID, _ := middleware.GetUserID(c)

	deleted, err := h.vendorUsecase.DeleteAllVendors(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "all vendors deleted", gin.H{"deletedCount": deleted})
}

// ImpersonateVendor mints a short-lived session for the vendor's owner
// POST /api/v1/admin/vendors/:id/impersonate
func (h *VendorHandler) ImpersonateVendor(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	result, err := h.vendorUsecase.ImpersonateVendor(c.Request.Context(), adminID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "impersonation token issued", result)
}

// FixVendorIndexes drops legacy vendor indexes left behind by older schema
// versions
// POST /api/v1/admin/vendors/fix-indexes
func (h *VendorHandler) FixVendorIndexes(c *gin.Context) {
	dropped, err := h.vendorUsecase.FixVendorIndexes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "indexes repaired", gin.H{"dropped": dropped})
}
