package entities

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorStatus represents the vendor lifecycle state
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "PENDING"
	VendorStatusApproved  VendorStatus = "APPROVED"
	VendorStatusRejected  VendorStatus = "REJECTED"
	VendorStatusSuspended VendorStatus = "SUSPENDED"
)

// CommissionType represents how the platform cut is computed
type CommissionType string

const (
	CommissionPercent CommissionType = "PERCENT"
	CommissionFlat    CommissionType = "FLAT"
)

// StoreSlugPattern is the only accepted shape for store slugs
var StoreSlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Vendor represents a marketplace seller. OwnerUser is backed by a sparse
// unique index so a user can own at most one vendor account.
type Vendor struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OwnerUser        *primitive.ObjectID `json:"ownerUser,omitempty" bson:"ownerUser,omitempty"`
	StoreName        string              `json:"storeName" bson:"storeName"`
	StoreSlug        string              `json:"storeSlug" bson:"storeSlug"`
	Email            string              `json:"email" bson:"email"`
	Status           VendorStatus        `json:"status" bson:"status"`
	StatusNotes      string              `json:"statusNotes,omitempty" bson:"statusNotes,omitempty"`
	Phone            string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Address          string              `json:"address,omitempty" bson:"address,omitempty"`
	Categories       []string            `json:"categories,omitempty" bson:"categories,omitempty"`
	CommissionType   CommissionType      `json:"commissionType" bson:"commissionType"`
	CommissionValue  float64             `json:"commissionValue" bson:"commissionValue"`
	PendingBalance   float64             `json:"pendingBalance" bson:"pendingBalance"`
	AvailableBalance float64             `json:"availableBalance" bson:"availableBalance"`
	TotalSales       float64             `json:"totalSales" bson:"totalSales"`
	TotalEarnings    float64             `json:"totalEarnings" bson:"totalEarnings"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CreateVendorInput represents the admin onboarding payload. Password is
// required only when the email does not resolve to an existing user.
type CreateVendorInput struct {
	StoreName       string         `json:"storeName" binding:"required,min=2,max=255"`
	StoreSlug       string         `json:"storeSlug" binding:"required"`
	Email           string         `json:"email" binding:"required,email"`
	Name            string         `json:"name" binding:"required,min=2,max=100"`
	Password        string         `json:"password"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	Categories      []string       `json:"categories"`
	Status          VendorStatus   `json:"status"`
	CommissionType  CommissionType `json:"commissionType"`
	CommissionValue float64        `json:"commissionValue"`
}

// RegisterVendorInput represents the self-service vendor application
type RegisterVendorInput struct {
	StoreName  string   `json:"storeName" binding:"required,min=2,max=255"`
	StoreSlug  string   `json:"storeSlug" binding:"required"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	Categories []string `json:"categories"`
}

// UpdateVendorStatusInput represents an admin status transition
type UpdateVendorStatusInput struct {
	Status VendorStatus `json:"status" binding:"required"`
	Notes  string       `json:"notes"`
}

// CreateVendorResponse carries the identifiers of the created pair
type CreateVendorResponse struct {
	VendorID    primitive.ObjectID `json:"vendorId"`
	UserID      primitive.ObjectID `json:"userId"`
	StoreSlug   string             `json:"storeSlug"`
	Status      VendorStatus       `json:"status"`
	UserCreated bool               `json:"userCreated"`
}

// ImpersonationResponse carries the short-lived vendor session token
type ImpersonationResponse struct {
	AccessToken string             `json:"accessToken"`
	ExpiresIn   int64              `json:"expiresIn"`
	VendorID    primitive.ObjectID `json:"vendorId"`
	UserID      primitive.ObjectID `json:"userId"`
}

// ValidStatus reports whether s is one of the known lifecycle states
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected, VendorStatusSuspended:
		return true
	}
	return false
}
