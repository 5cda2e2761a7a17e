package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// PayoutRepository defines payout data operations
type PayoutRepository interface {
	Create(ctx context.Context, payout *entities.Payout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Payout, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status entities.PayoutRequestStatus, note string, processedAt time.Time) error
	ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Payout, int64, error)
	List(ctx context.Context, status entities.PayoutRequestStatus, limit, offset int) ([]*entities.Payout, int64, error)
	DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
