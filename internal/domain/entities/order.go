package entities

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus represents the customer-facing order lifecycle
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "Received"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

// orderStatusRank orders the lifecycle; transitions only move forward.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusReceived:       0,
	OrderStatusProcessing:     1,
	OrderStatusShipped:        2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// CanTransitionTo reports whether the order may move from s to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// PaymentStatus represents the payment outcome of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// VendorItemStatus represents per-line-item fulfillment state on the vendor
// dashboard
type VendorItemStatus string

const (
	VendorItemReceived       VendorItemStatus = "RECEIVED"
	VendorItemProcessing     VendorItemStatus = "PROCESSING"
	VendorItemShipped        VendorItemStatus = "SHIPPED"
	VendorItemOutForDelivery VendorItemStatus = "OUT_FOR_DELIVERY"
	VendorItemDelivered      VendorItemStatus = "DELIVERED"
	VendorItemCancelled      VendorItemStatus = "CANCELLED"
)

// Valid reports whether s is one of the known fulfillment states
func (s VendorItemStatus) Valid() bool {
	switch s {
	case VendorItemReceived, VendorItemProcessing, VendorItemShipped,
		VendorItemOutForDelivery, VendorItemDelivered, VendorItemCancelled:
		return true
	}
	return false
}

// PayoutStatus tracks when a vendor's share of an order becomes payable
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "PENDING"
	PayoutStatusAvailable PayoutStatus = "AVAILABLE"
	PayoutStatusPaid      PayoutStatus = "PAID"
)

// MaxFailedOrderNotifications caps failure emails both per order and per
// customer across all their failed orders.
const MaxFailedOrderNotifications = 3

// GuestCustomer carries contact details for orders placed without an account
type GuestCustomer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// OrderItem is a single line item. Commission fields are snapshotted at
// checkout so later vendor configuration changes never rewrite history.
type OrderItem struct {
	ProductID        primitive.ObjectID `json:"productId" bson:"productId"`
	VendorID         primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Name             string             `json:"name" bson:"name"`
	Price            float64            `json:"price" bson:"price"`
	Quantity         int                `json:"quantity" bson:"quantity"`
	CommissionType   CommissionType     `json:"commissionType" bson:"commissionType"`
	CommissionValue  float64            `json:"commissionValue" bson:"commissionValue"`
	CommissionAmount float64            `json:"commissionAmount" bson:"commissionAmount"`
	VendorEarning    float64            `json:"vendorEarning" bson:"vendorEarning"`
	VendorStatus     VendorItemStatus   `json:"vendorStatus" bson:"vendorStatus"`
}

// VendorSummary aggregates one vendor's share of an order for finance
// reporting
type VendorSummary struct {
	VendorID     primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Gross        float64            `json:"gross" bson:"gross"`
	Commission   float64            `json:"commission" bson:"commission"`
	Net          float64            `json:"net" bson:"net"`
	PayoutStatus PayoutStatus       `json:"payoutStatus" bson:"payoutStatus"`
}

// StatusHistoryEntry is one append-only status transition record
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
	ChangedAt time.Time   `json:"changedAt" bson:"changedAt"`
}

// CouponSnapshot records the coupon applied at checkout
type CouponSnapshot struct {
	Code     string  `json:"code" bson:"code"`
	Discount float64 `json:"discount" bson:"discount"`
}

// Order represents an order document. Exactly one of UserID and
// GuestCustomer is set; the store cannot enforce that, so order placement
// validates it.
type Order struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID          *primitive.ObjectID  `json:"userId,omitempty" bson:"userId,omitempty"`
	GuestCustomer   *GuestCustomer       `json:"guestCustomer,omitempty" bson:"guestCustomer,omitempty"`
	Items           []OrderItem          `json:"items" bson:"items"`
	VendorSummaries []VendorSummary      `json:"vendorSummaries" bson:"vendorSummaries"`
	Subtotal        float64              `json:"subtotal" bson:"subtotal"`
	Discount        float64              `json:"discount" bson:"discount"`
	Total           float64              `json:"total" bson:"total"`
	Coupon          *CouponSnapshot      `json:"coupon,omitempty" bson:"coupon,omitempty"`
	Status          OrderStatus          `json:"status" bson:"status"`
	StatusHistory   []StatusHistoryEntry `json:"statusHistory" bson:"statusHistory"`
	PaymentStatus   PaymentStatus        `json:"paymentStatus" bson:"paymentStatus"`
	FailReason      string               `json:"failReason,omitempty" bson:"failReason,omitempty"`
	FailCode        string               `json:"failCode,omitempty" bson:"failCode,omitempty"`

	FailedOrderNotificationsSent   int         `json:"failedOrderNotificationsSent" bson:"failedOrderNotificationsSent"`
	FailedOrderNotificationsSentAt []time.Time `json:"failedOrderNotificationsSentAt,omitempty" bson:"failedOrderNotificationsSentAt,omitempty"`
	FailedOrderNotificationEnabled bool        `json:"failedOrderNotificationEnabled" bson:"failedOrderNotificationEnabled"`

	ReviewRequestsSent bool      `json:"reviewRequestsSent" bson:"reviewRequestsSent"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsGuest reports whether the order was placed without an account
func (o *Order) IsGuest() bool {
	return o.UserID == nil && o.GuestCustomer != nil
}

// PlaceOrderInput represents checkout input
type PlaceOrderInput struct {
	UserID        string           `json:"userId"`
	GuestCustomer *GuestCustomer   `json:"guestCustomer"`
	Items         []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
	CouponCode    string           `json:"couponCode"`
}

// PlaceOrderItem is one requested line at checkout
type PlaceOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusInput represents an admin order status transition
type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required"`
	Note   string      `json:"note"`
}

// MarkOrderFailedInput records a failed payment
type MarkOrderFailedInput struct {
	FailReason string `json:"failReason" binding:"required"`
	FailCode   string `json:"failCode"`
}

// FailedNotificationStatus reports where an order stands against both
// notification ceilings
type FailedNotificationStatus struct {
	Enabled       bool        `json:"enabled"`
	SentCount     int         `json:"sentCount"`
	SentAt        []time.Time `json:"sentAt,omitempty"`
	CustomerTotal int         `json:"customerTotal"`
	Remaining     int         `json:"remaining"`
}

// Round2 rounds a money amount to cents, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeCommission returns the platform cut for a line of the given price
// and quantity under the vendor's commission configuration. FLAT commission
// is charged per unit.
func ComputeCommission(commissionType CommissionType, value, price float64, quantity int) float64 {
	gross := price * float64(quantity)
	switch commissionType {
	case CommissionFlat:
		c := value * float64(quantity)
		if c > gross {
			c = gross
		}
		return Round2(c)
	default:
		return Round2(gross * value / 100)
	}
}
