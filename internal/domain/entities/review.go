package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStatus is the moderation state of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review represents a product review. VerifiedPurchase is always true for
// reviews created through a review request, since those originate from a
// delivered order.
type Review struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ProductID        primitive.ObjectID  `json:"productId" bson:"productId"`
	OrderID          primitive.ObjectID  `json:"orderId" bson:"orderId"`
	VendorID         primitive.ObjectID  `json:"vendorId" bson:"vendorId"`
	UserID           *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	ReviewerName     string              `json:"reviewerName" bson:"reviewerName"`
	ReviewerEmail    string              `json:"reviewerEmail" bson:"reviewerEmail"`
	Rating           int                 `json:"rating" bson:"rating"`
	Comment          string              `json:"comment" bson:"comment"`
	VerifiedPurchase bool                `json:"verifiedPurchase" bson:"verifiedPurchase"`
	Status           ReviewStatus        `json:"status" bson:"status"`
	IsApproved       bool                `json:"isApproved" bson:"isApproved"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}
