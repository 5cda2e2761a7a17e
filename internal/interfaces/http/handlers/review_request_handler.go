package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/utils"
)

// trackingPixel is a transparent 1x1 GIF served by the open-tracking endpoint
var trackingPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// ReviewRequestHandler handles review solicitation, both the admin batch
// surface and the public token endpoints reached from emails
type ReviewRequestHandler struct {
	reviewRequestUsecase *usecases.ReviewRequestUsecase
}

// NewReviewRequestHandler creates a new review request handler
func NewReviewRequestHandler(reviewRequestUsecase *usecases.ReviewRequestUsecase) *ReviewRequestHandler {
	return &ReviewRequestHandler{reviewRequestUsecase: reviewRequestUsecase}
}

// SendReviewRequests emails review links for delivered orders
// POST /api/v1/admin/review-requests/send
func (h *ReviewRequestHandler) SendReviewRequests(c *gin.Context) {
	var input entities.SendReviewRequestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.reviewRequestUsecase.SendReviewRequests(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review requests processed", result)
}

// ListReviewRequests lists requests with optional status filters
// GET /api/v1/admin/review-requests?status=sent&adminStatus=pending
func (h *ReviewRequestHandler) ListReviewRequests(c *gin.Context) {
	p := pagination(c)
	status := entities.ReviewRequestStatus(c.Query("status"))
	adminStatus := entities.ReviewRequestAdminStatus(c.Query("adminStatus"))

	requests, total, err := h.reviewRequestUsecase.ListReviewRequests(c.Request.Context(), status, adminStatus, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", requests, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetReviewRequest returns a single request
// GET /api/v1/admin/review-requests/:id
func (h *ReviewRequestHandler) GetReviewRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	request, err := h.reviewRequestUsecase.GetReviewRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", request)
}

// ApproveReviewRequest publishes the submitted review
// POST /api/v1/admin/review-requests/:id/approve
func (h *ReviewRequestHandler) ApproveReviewRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.reviewRequestUsecase.ApproveReviewRequest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review approved", nil)
}

// RejectReviewRequest hides the submitted review
// POST /api/v1/admin/review-requests/:id/reject
func (h *ReviewRequestHandler) RejectReviewRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.reviewRequestUsecase.RejectReviewRequest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review rejected", nil)
}

// CancelReviewRequest withdraws a request that has not been answered yet
// POST /api/v1/admin/review-requests/:id/cancel
func (h *ReviewRequestHandler) CancelReviewRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.reviewRequestUsecase.CancelReviewRequest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review request cancelled", nil)
}

// GetByToken resolves the review form behind an emailed link
// GET /api/v1/review/:token
func (h *ReviewRequestHandler) GetByToken(c *gin.Context) {
	request, err := h.reviewRequestUsecase.GetReviewRequestByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", request)
}

// SubmitReview records the customer's review for the requested product
// POST /api/v1/review/:token/submit
func (h *ReviewRequestHandler) SubmitReview(c *gin.Context) {
	var input entities.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	review, err := h.reviewRequestUsecase.SubmitReviewFromRequest(c.Request.Context(), c.Param("token"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "review submitted", review)
}

// TrackEmailOpen serves the open-tracking pixel. Always returns the image,
// even for unknown tokens, so broken links never surface in the email client.
// GET /api/v1/reviews/track/:token
func (h *ReviewRequestHandler) TrackEmailOpen(c *gin.Context) {
	_ = h.reviewRequestUsecase.TrackEmailOpen(c.Request.Context(), c.Param("token"))

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/gif", trackingPixel)
}
