package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// ReviewRepository defines review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Review, error)
	// GetByProductAndReviewer finds an existing review for the product by the
	// same registered user or, for guests, the same email
	GetByProductAndReviewer(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (*entities.Review, error)
	// HasApprovedReview reports whether the reviewer already has an approved
	// review for the product
	HasApprovedReview(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (bool, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewStatus, approved bool) error
	ListByProduct(ctx context.Context, productID primitive.ObjectID, limit, offset int) ([]*entities.Review, int64, error)
	// RatingStats aggregates average rating and count of approved reviews
	RatingStats(ctx context.Context, productID primitive.ObjectID) (float64, int, error)
}
