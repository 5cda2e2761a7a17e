package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutRequestStatus is the state of a vendor withdrawal
type PayoutRequestStatus string

const (
	PayoutRequested PayoutRequestStatus = "REQUESTED"
	PayoutApproved  PayoutRequestStatus = "APPROVED"
	PayoutPaid      PayoutRequestStatus = "PAID"
	PayoutRejected  PayoutRequestStatus = "REJECTED"
)

// Payout is a vendor-initiated transfer of available balance out of the
// platform. Requesting one debits the vendor's available balance; rejection
// restores it.
type Payout struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VendorID    primitive.ObjectID  `json:"vendorId" bson:"vendorId"`
	Amount      float64             `json:"amount" bson:"amount"`
	Status      PayoutRequestStatus `json:"status" bson:"status"`
	Note        string              `json:"note,omitempty" bson:"note,omitempty"`
	RequestedAt time.Time           `json:"requestedAt" bson:"requestedAt"`
	ProcessedAt *time.Time          `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// RequestPayoutInput is the vendor withdrawal payload
type RequestPayoutInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}
