package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
)

// NotificationHandler handles the failed-order notification endpoints
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// SendFailedOrderNotification emails the customer about a failed payment.
// ?force=true bypasses the per-order toggle but never the send ceilings.
// POST /api/v1/admin/orders/:id/notify-failed
func (h *NotificationHandler) SendFailedOrderNotification(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	force, _ := strconv.ParseBool(c.Query("force"))

	status, err := h.notificationUsecase.SendFailedOrderNotification(c.Request.Context(), orderID, force)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notification sent", status)
}

// ToggleFailedOrderNotification enables or disables reminders for an order
// PATCH /api/v1/admin/orders/:id/notifications
func (h *NotificationHandler) ToggleFailedOrderNotification(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.notificationUsecase.ToggleFailedOrderNotification(c.Request.Context(), orderID, *input.Enabled); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notification toggle updated", gin.H{"enabled": *input.Enabled})
}

// GetFailedOrderNotificationStatus reports where the order stands against
// both send ceilings
// GET /api/v1/admin/orders/:id/notifications
func (h *NotificationHandler) GetFailedOrderNotificationStatus(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.notificationUsecase.GetFailedOrderNotificationStatus(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", status)
}
