package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/utils"
)

// CouponHandler handles discount code endpoints
type CouponHandler struct {
	couponUsecase *usecases.CouponUsecase
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponUsecase *usecases.CouponUsecase) *CouponHandler {
	return &CouponHandler{couponUsecase: couponUsecase}
}

// CreateCoupon registers a new discount code
// POST /api/v1/admin/coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var input entities.CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	coupon, err := h.couponUsecase.CreateCoupon(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "coupon created", coupon)
}

// GetCoupon returns a coupon by id
// GET /api/v1/admin/coupons/:id
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	coupon, err := h.couponUsecase.GetCoupon(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", coupon)
}

// UpdateCoupon edits a coupon
// PUT /api/v1/admin/coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input struct {
		entities.CreateCouponInput
		Active *bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	coupon, err := h.couponUsecase.UpdateCoupon(c.Request.Context(), id, &input.CreateCouponInput, active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "coupon updated", coupon)
}

// DeleteCoupon removes a coupon
// DELETE /api/v1/admin/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.couponUsecase.DeleteCoupon(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "coupon deleted", nil)
}

// ListCoupons lists all coupons
// GET /api/v1/admin/coupons
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	p := pagination(c)

	coupons, total, err := h.couponUsecase.ListCoupons(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", coupons, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ValidateCoupon checks a code at checkout without consuming a use
// GET /api/v1/coupons/validate?code=SAVE10&total=99.90
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Error(c, domainerrors.BadRequest("code is required"))
		return
	}
	total, _ := strconv.ParseFloat(c.DefaultQuery("total", "0"), 64)

	result, err := h.couponUsecase.ValidateCoupon(c.Request.Context(), code, total)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", result)
}
