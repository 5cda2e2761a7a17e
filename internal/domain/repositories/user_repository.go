package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// SetVendorLink attaches a vendor to the user and promotes the role
	SetVendorLink(ctx context.Context, userID, vendorID primitive.ObjectID) error
	// ClearVendorLink detaches the vendor and demotes the role back to USER
	ClearVendorLink(ctx context.Context, userID primitive.ObjectID) error
	// ClearAllVendorLinks demotes every vendor-linked user; used by the
	// admin-wide vendor wipe
	ClearAllVendorLinks(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, limit, offset int) ([]*entities.User, int64, error)
}
