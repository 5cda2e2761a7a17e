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

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	orderUsecase  *usecases.OrderUsecase
	vendorUsecase *usecases.VendorUsecase
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase *usecases.OrderUsecase, vendorUsecase *usecases.VendorUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, vendorUsecase: vendorUsecase}
}

// PlaceOrder handles checkout for both logged-in customers and guests. A
// bearer token, when present, overrides any userId in the body.
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var input entities.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = userID.Hex()
		input.GuestCustomer = nil
	}

	order, err := h.orderUsecase.PlaceOrder(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "order placed", order)
}

// GetOrder returns a single order. Admins see everything, customers only
// their own orders.
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderUsecase.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role != "ADMIN" {
		userID, ok := middleware.GetUserID(c)
		if !ok || order.UserID == nil || *order.UserID != userID {
			response.Error(c, domainerrors.NotFound("order not found"))
			return
		}
	}

	response.Success(c, http.StatusOK, "ok", order)
}

// ListMyOrders returns the authenticated customer's order history
// GET /api/v1/orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	p := pagination(c)

	orders, total, err := h.orderUsecase.ListUserOrders(c.Request.Context(), userID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", orders, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ListOrders lists all orders
// GET /api/v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	p := pagination(c)

	orders, total, err := h.orderUsecase.ListOrders(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", orders, utils.CalculateMeta(total, p.Page, p.Limit))
}

// UpdateOrderStatus advances an order through its lifecycle
// PATCH /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "status updated", order)
}

// MarkOrderFailed records a failed payment against the order
// POST /api/v1/admin/orders/:id/fail
func (h *OrderHandler) MarkOrderFailed(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.MarkOrderFailedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.orderUsecase.MarkOrderFailed(c.Request.Context(), id, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "order marked failed", nil)
}

// MarkVendorSummaryPaid settles a vendor's share of the order
// POST /api/v1/admin/orders/:id/vendors/:vendorId/paid
func (h *OrderHandler) MarkVendorSummaryPaid(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	vendorID, err := pathID(c, "vendorId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.orderUsecase.MarkVendorSummaryPaid(c.Request.Context(), orderID, vendorID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vendor share marked paid", nil)
}

// ListVendorOrders lists orders containing the caller's items
// GET /api/v1/vendor/orders
func (h *OrderHandler) ListVendorOrders(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	p := pagination(c)

	orders, total, err := h.orderUsecase.ListVendorOrders(c.Request.Context(), vendor.ID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", orders, utils.CalculateMeta(total, p.Page, p.Limit))
}

// UpdateVendorItemStatus updates fulfilment progress on the caller's own
// order line
// PATCH /api/v1/vendor/orders/:id/items/:productId/status
func (h *OrderHandler) UpdateVendorItemStatus(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input struct {
		Status entities.VendorItemStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.orderUsecase.UpdateVendorItemStatus(c.Request.Context(), vendor.ID, orderID, productID, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "item status updated", nil)
}

func (h *OrderHandler) callerVendor(c *gin.Context) (*entities.Vendor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return h.vendorUsecase.GetVendorByOwner(c.Request.Context(), userID)
}
