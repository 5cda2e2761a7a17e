package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/infrastructure/datasources/mongodb"
	"market-hub.backend/pkg/utils"
)

// UserRepository implements user data operations over MongoDB
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongodb.Database) *UserRepository {
	return &UserRepository{col: db.Users()}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = utils.NormalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error) {
	var user entities.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.col.FindOne(ctx, bson.M{"email": utils.NormalizeEmail(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user document
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVendorLink attaches a vendor to the user and promotes the role
func (r *UserRepository) SetVendorLink(ctx context.Context, userID, vendorID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"vendorId":  vendorID,
			"role":      entities.UserRoleVendor,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearVendorLink detaches the vendor and demotes the role back to USER
func (r *UserRepository) ClearVendorLink(ctx context.Context, userID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set":   bson.M{"role": entities.UserRoleUser, "updatedAt": time.Now()},
		"$unset": bson.M{"vendorId": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearAllVendorLinks demotes every vendor-linked user
func (r *UserRepository) ClearAllVendorLinks(ctx context.Context) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"role": entities.UserRoleVendor}, bson.M{
		"$set":   bson.M{"role": entities.UserRoleUser, "updatedAt": time.Now()},
		"$unset": bson.M{"vendorId": ""},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a user document
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []*entities.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
