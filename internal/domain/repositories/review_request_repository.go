package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// ReviewRequestRepository defines review-request data operations
type ReviewRequestRepository interface {
	Create(ctx context.Context, request *entities.ReviewRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.ReviewRequest, error)
	GetByToken(ctx context.Context, token string) (*entities.ReviewRequest, error)
	// GetActiveByOrderProduct returns a pending or sent request for the
	// (order, product) pair, or ErrNotFound
	GetActiveByOrderProduct(ctx context.Context, orderID, productID primitive.ObjectID) (*entities.ReviewRequest, error)
	List(ctx context.Context, status entities.ReviewRequestStatus, adminStatus entities.ReviewRequestAdminStatus, limit, offset int) ([]*entities.ReviewRequest, int64, error)

	MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error
	MarkOpened(ctx context.Context, id primitive.ObjectID, at time.Time) error
	MarkExpired(ctx context.Context, id primitive.ObjectID) error
	// MarkReviewed links the created review and resets the moderation axis
	// back to pending
	MarkReviewed(ctx context.Context, id, reviewID primitive.ObjectID, at time.Time) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestStatus) error
	SetAdminStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestAdminStatus) error
}
