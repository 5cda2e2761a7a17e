package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRequestStatus is the customer-facing lifecycle of a review request
type ReviewRequestStatus string

const (
	ReviewRequestPending   ReviewRequestStatus = "pending"
	ReviewRequestSent      ReviewRequestStatus = "sent"
	ReviewRequestReviewed  ReviewRequestStatus = "reviewed"
	ReviewRequestExpired   ReviewRequestStatus = "expired"
	ReviewRequestCancelled ReviewRequestStatus = "cancelled"
)

// ReviewRequestAdminStatus is the moderation lifecycle, independent of the
// customer axis
type ReviewRequestAdminStatus string

const (
	ReviewRequestAdminPending  ReviewRequestAdminStatus = "pending"
	ReviewRequestAdminApproved ReviewRequestAdminStatus = "approved"
	ReviewRequestAdminRejected ReviewRequestAdminStatus = "rejected"
)

// ReviewRequestTTL is the default validity window of a review token
const ReviewRequestTTL = 30 * 24 * time.Hour

// ReviewRequest is a tokenized, time-boxed invitation for a customer to
// review a purchased product. One per (order, product) pair.
type ReviewRequest struct {
	ID            primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	OrderID       primitive.ObjectID       `json:"orderId" bson:"orderId"`
	ProductID     primitive.ObjectID       `json:"productId" bson:"productId"`
	VendorID      primitive.ObjectID       `json:"vendorId" bson:"vendorId"`
	UserID        *primitive.ObjectID      `json:"userId,omitempty" bson:"userId,omitempty"`
	CustomerName  string                   `json:"customerName" bson:"customerName"`
	CustomerEmail string                   `json:"customerEmail" bson:"customerEmail"`
	ProductName   string                   `json:"productName" bson:"productName"`
	ReviewToken   string                   `json:"-" bson:"reviewToken"`
	Status        ReviewRequestStatus      `json:"status" bson:"status"`
	AdminStatus   ReviewRequestAdminStatus `json:"adminStatus" bson:"adminStatus"`
	ReviewID      *primitive.ObjectID      `json:"reviewId,omitempty" bson:"reviewId,omitempty"`
	EmailOpened   bool                     `json:"emailOpened" bson:"emailOpened"`
	EmailOpenedAt *time.Time               `json:"emailOpenedAt,omitempty" bson:"emailOpenedAt,omitempty"`
	SentAt        *time.Time               `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	ReviewedAt    *time.Time               `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	ExpiresAt     time.Time                `json:"expiresAt" bson:"expiresAt"`
	CreatedAt     time.Time                `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt" bson:"updatedAt"`
}

// Expired reports whether the request is past its validity window
func (r *ReviewRequest) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// SendReviewRequestsInput selects the orders and products to process. Empty
// OrderIDs means all delivered orders not yet processed.
type SendReviewRequestsInput struct {
	OrderIDs   []string `json:"orderIds"`
	ProductIDs []string `json:"productIds"`
}

// SendReviewRequestsResult aggregates a batch run
type SendReviewRequestsResult struct {
	Sent    int      `json:"sent"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// SubmitReviewInput is the public review submission payload
type SubmitReviewInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"required"`
	Name   string `json:"name"`
}
