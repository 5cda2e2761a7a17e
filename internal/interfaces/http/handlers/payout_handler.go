package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/middleware"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/utils"
)

// PayoutHandler handles vendor withdrawal endpoints
type PayoutHandler struct {
	payoutUsecase *usecases.PayoutUsecase
	vendorUsecase *usecases.VendorUsecase
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutUsecase *usecases.PayoutUsecase, vendorUsecase *usecases.VendorUsecase) *PayoutHandler {
	return &PayoutHandler{payoutUsecase: payoutUsecase, vendorUsecase: vendorUsecase}
}

func (h *PayoutHandler) callerVendor(c *gin.Context) (*entities.Vendor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return h.vendorUsecase.GetVendorByOwner(c.Request.Context(), userID)
}

// RequestPayout opens a withdrawal against the caller's available balance
// POST /api/v1/vendor/payouts
func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.RequestPayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payout, err := h.payoutUsecase.RequestPayout(c.Request.Context(), vendor.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "payout requested", payout)
}

// ListMyPayouts lists the caller's withdrawal history
// GET /api/v1/vendor/payouts
func (h *PayoutHandler) ListMyPayouts(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	p := pagination(c)

	payouts, total, err := h.payoutUsecase.ListVendorPayouts(c.Request.Context(), vendor.ID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", payouts, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ListPayouts lists withdrawals with an optional status filter
// GET /api/v1/admin/payouts?status=REQUESTED
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	p := pagination(c)
	status := entities.PayoutRequestStatus(c.Query("status"))

	payouts, total, err := h.payoutUsecase.ListPayouts(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", payouts, utils.CalculateMeta(total, p.Page, p.Limit))
}

type payoutDecisionInput struct {
	Note string `json:"note"`
}

// ApprovePayout accepts a pending withdrawal
// POST /api/v1/admin/payouts/:id/approve
func (h *PayoutHandler) ApprovePayout(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input payoutDecisionInput
	_ = c.ShouldBindJSON(&input)

	if err := h.payoutUsecase.ApprovePayout(c.Request.Context(), id, input.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payout approved", nil)
}

// MarkPayoutPaid records that the money left the platform
// POST /api/v1/admin/payouts/:id/paid
func (h *PayoutHandler) MarkPayoutPaid(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input payoutDecisionInput
	_ = c.ShouldBindJSON(&input)

	if err := h.payoutUsecase.MarkPayoutPaid(c.Request.Context(), id, input.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payout marked paid", nil)
}

// RejectPayout declines a pending withdrawal and restores the balance
// POST /api/v1/admin/payouts/:id/reject
func (h *PayoutHandler) RejectPayout(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input payoutDecisionInput
	_ = c.ShouldBindJSON(&input)

	if err := h.payoutUsecase.RejectPayout(c.Request.Context(), id, input.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "payout rejected", nil)
}
