package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
	"market-hub.backend/internal/usecases"
)

type reviewRequestFixture struct {
	router   *gin.Engine
	requests *reviewRequestRepoStub
	reviews  *reviewRepoStub
	orders   *orderRepoStub
}

func newReviewRequestFixture(t *testing.T) *reviewRequestFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	requests := newReviewRequestRepoStub()
	reviews := newReviewRepoStub()
	orders := newOrderRepoStub()
	products := newProductRepoStub()

	uc := usecases.NewReviewRequestUsecase(requests, reviews, orders, products, newUserRepoStub(), &mailStub{})
	h := NewReviewRequestHandler(uc)

	r := gin.New()
	r.GET("/review/:token", h.GetByToken)
	r.POST("/review/:token/submit", h.SubmitReview)
	r.GET("/reviews/track/:token", h.TrackEmailOpen)

	return &reviewRequestFixture{router: r, requests: requests, reviews: reviews, orders: orders}
}

func (f *reviewRequestFixture) seedSentRequest(t *testing.T, token string) *entities.ReviewRequest {
	t.Helper()
	now := time.Now()
	sent := now.Add(-time.Hour)
	req := &entities.ReviewRequest{
		OrderID:       primitive.NewObjectID(),
		ProductID:     primitive.NewObjectID(),
		VendorID:      primitive.NewObjectID(),
		CustomerName:  "Gus",
		CustomerEmail: "gus@example.com",
		ProductName:   "USB Lamp",
		ReviewToken:   token,
		Status:        entities.ReviewRequestSent,
		AdminStatus:   entities.ReviewRequestAdminPending,
		SentAt:        &sent,
		ExpiresAt:     now.Add(entities.ReviewRequestTTL),
	}
	require.NoError(t, f.requests.Create(nil, req))
	return req
}

func TestReviewRequestHandler_GetByToken(t *testing.T) {
	f := newReviewRequestFixture(t)
	f.seedSentRequest(t, "tok-1")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/review/tok-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USB Lamp")
	// The raw token never appears in API responses
	assert.NotContains(t, w.Body.String(), "tok-1")
}

func TestReviewRequestHandler_GetByToken_Unknown(t *testing.T) {
	f := newReviewRequestFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/review/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestReviewRequestHandler_SubmitReview(t *testing.T) {
	f := newReviewRequestFixture(t)
	req := f.seedSentRequest(t, "tok-2")

	w := postJSON(f.router, "/review/tok-2/submit", `{"rating":5,"review":"Bright and sturdy"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	stored := f.requests.requests[req.ID]
	assert.Equal(t, entities.ReviewRequestReviewed, stored.Status)
	require.NotNil(t, stored.ReviewID)
	assert.Equal(t, entities.ReviewStatusPending, f.reviews.reviews[*stored.ReviewID].Status)
}

func TestReviewRequestHandler_SubmitTwiceConflicts(t *testing.T) {
	f := newReviewRequestFixture(t)
	f.seedSentRequest(t, "tok-3")

	require.Equal(t, http.StatusCreated, postJSON(f.router, "/review/tok-3/submit", `{"rating":4,"review":"Good"}`, nil).Code)

	w := postJSON(f.router, "/review/tok-3/submit", `{"rating":4,"review":"Good"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reviewSubmitted")
}

func TestReviewRequestHandler_TrackEmailOpenServesPixel(t *testing.T) {
	f := newReviewRequestFixture(t)
	req := f.seedSentRequest(t, "tok-4")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews/track/tok-4", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/gif", w.Header().Get("Content-Type"))
	assert.True(t, f.requests.requests[req.ID].EmailOpened)
}

func TestReviewRequestHandler_TrackUnknownTokenStillServesPixel(t *testing.T) {
	f := newReviewRequestFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews/track/nope", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/gif", w.Header().Get("Content-Type"))
}
