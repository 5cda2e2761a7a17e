package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog item owned by a vendor
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VendorID      primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64            `json:"price" bson:"price"`
	Stock         int                `json:"stock" bson:"stock"`
	Categories    []string           `json:"categories,omitempty" bson:"categories,omitempty"`
	Images        []string           `json:"images,omitempty" bson:"images,omitempty"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
	ReviewCount   int                `json:"reviewCount" bson:"reviewCount"`
	Active        bool               `json:"active" bson:"active"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductInput represents input for creating a product
type CreateProductInput struct {
	Name        string   `json:"name" binding:"required,min=2,max=255"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	Categories  []string `json:"categories"`
	Images      []string `json:"images"`
}

// UpdateProductInput represents input for updating a product
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Categories  []string `json:"categories"`
	Images      []string `json:"images"`
	Active      *bool    `json:"active"`
}
