package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleVendor UserRole = "VENDOR"
	UserRoleUser   UserRole = "USER"
)

// User represents a user document. VendorID is set only while the user owns
// an approved vendor account; detaching a vendor clears it.
type User struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Email        string              `json:"email" bson:"email"`
	Name         string              `json:"name" bson:"name"`
	PasswordHash string              `json:"-" bson:"passwordHash"`
	Role         UserRole            `json:"role" bson:"role"`
	VendorID     *primitive.ObjectID `json:"vendorId,omitempty" bson:"vendorId,omitempty"`
	Phone        string              `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput represents input for refreshing a token pair
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user"`
}
