package entities

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponType represents how the discount is computed
type CouponType string

const (
	CouponPercent CouponType = "PERCENT"
	CouponFixed   CouponType = "FIXED"
)

// Coupon represents a discount code. UsedCount is only ever moved by an
// atomic increment guarded by MaxUses.
type Coupon struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code"`
	Type          CouponType         `json:"type" bson:"type"`
	Value         float64            `json:"value" bson:"value"`
	MinOrderTotal float64            `json:"minOrderTotal" bson:"minOrderTotal"`
	MaxUses       int                `json:"maxUses" bson:"maxUses"`
	UsedCount     int                `json:"usedCount" bson:"usedCount"`
	Active        bool               `json:"active" bson:"active"`
	ExpiresAt     *time.Time         `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Discount returns the discount the coupon grants on the given order total
func (c *Coupon) Discount(orderTotal float64) float64 {
	var d float64
	switch c.Type {
	case CouponFixed:
		d = c.Value
	default:
		d = orderTotal * c.Value / 100
	}
	if d > orderTotal {
		d = orderTotal
	}
	return Round2(d)
}

// Usable reports whether the coupon can be applied to an order of the given
// total at the given time
func (c *Coupon) Usable(orderTotal float64, now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false
	}
	return orderTotal >= c.MinOrderTotal
}

// NormalizeCouponCode uppercases and trims a coupon code
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateCouponInput is the admin coupon payload
type CreateCouponInput struct {
	Code          string     `json:"code" binding:"required,min=3,max=32"`
	Type          CouponType `json:"type" binding:"required"`
	Value         float64    `json:"value" binding:"required,gt=0"`
	MinOrderTotal float64    `json:"minOrderTotal"`
	MaxUses       int        `json:"maxUses"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}
