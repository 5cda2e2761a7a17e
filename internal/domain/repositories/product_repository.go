package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// ProductRepository defines catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error)
	ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Product, int64, error)
	// SetRating stores the recomputed average rating and review count
	SetRating(ctx context.Context, id primitive.ObjectID, average float64, count int) error
}
