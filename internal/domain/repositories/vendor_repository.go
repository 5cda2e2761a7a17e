package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// BalanceDelta moves a vendor's running balances by the given amounts. All
// fields are applied in a single atomic update.
type BalanceDelta struct {
	Pending   float64
	Available float64
	Sales     float64
	Earnings  float64
}

// VendorRepository defines vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entities.Vendor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Vendor, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*entities.Vendor, error)
	GetByOwnerUser(ctx context.Context, userID primitive.ObjectID) (*entities.Vendor, error)
	Update(ctx context.Context, vendor *entities.Vendor) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entities.VendorStatus, notes string) error
	ApplyBalanceDelta(ctx context.Context, id primitive.ObjectID, delta BalanceDelta) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, status entities.VendorStatus, limit, offset int) ([]*entities.Vendor, int64, error)
	ListAll(ctx context.Context) ([]*entities.Vendor, error)
}

// MaintenanceRepository exposes the idempotent index repair used both as a
// startup migration and as an admin endpoint
type MaintenanceRepository interface {
	FixVendorIndexes(ctx context.Context) ([]string, error)
}
