package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// CouponRepository defines coupon data operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *entities.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)
	Update(ctx context.Context, coupon *entities.Coupon) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int64, error)
	// IncrementUsage bumps usedCount, guarded so it never passes maxUses.
	// Returns false when the coupon ran out of uses.
	IncrementUsage(ctx context.Context, code string) (bool, error)
}
