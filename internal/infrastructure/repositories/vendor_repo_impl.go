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
	domainRepos "market-hub.backend/internal/domain/repositories"
	"market-hub.backend/internal/infrastructure/datasources/mongodb"
	"market-hub.backend/pkg/utils"
)

// VendorRepository implements vendor data operations over MongoDB
type VendorRepository struct {
	col *mongo.Collection
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *mongodb.Database) *VendorRepository {
	return &VendorRepository{col: db.Vendors()}
}

// Create creates a new vendor. The unique indexes on storeSlug and ownerUser
// are the real backstop against races between the usecase's existence checks
// and the insert.
func (r *VendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	vendor.ID = primitive.NewObjectID()
	vendor.Email = utils.NormalizeEmail(vendor.Email)
	vendor.StoreSlug = utils.NormalizeSlug(vendor.StoreSlug)
	vendor.CreatedAt = time.Now()
	vendor.UpdatedAt = vendor.CreatedAt

	_, err := r.col.InsertOne(ctx, vendor)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Vendor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetBySlug gets a vendor by normalized store slug
func (r *VendorRepository) GetBySlug(ctx context.Context, slug string) (*entities.Vendor, error) {
	return r.findOne(ctx, bson.M{"storeSlug": utils.NormalizeSlug(slug)})
}

// GetByEmail gets a vendor by normalized email
func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (*entities.Vendor, error) {
	return r.findOne(ctx, bson.M{"email": utils.NormalizeEmail(email)})
}

// GetByOwnerUser gets the vendor owned by the given user
func (r *VendorRepository) GetByOwnerUser(ctx context.Context, userID primitive.ObjectID) (*entities.Vendor, error) {
	return r.findOne(ctx, bson.M{"ownerUser": userID})
}

func (r *VendorRepository) findOne(ctx context.Context, filter bson.M) (*entities.Vendor, error) {
	var vendor entities.Vendor
	err := r.col.FindOne(ctx, filter).Decode(&vendor)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update replaces the vendor document
func (r *VendorRepository) Update(ctx context.Context, vendor *entities.Vendor) error {
	vendor.UpdatedAt = time.Now()
	vendor.Email = utils.NormalizeEmail(vendor.Email)
	vendor.StoreSlug = utils.NormalizeSlug(vendor.StoreSlug)

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": vendor.ID}, vendor)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus transitions the vendor lifecycle state
func (r *VendorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entities.VendorStatus, notes string) error {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if notes != "" {
		set["statusNotes"] = notes
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ApplyBalanceDelta moves the vendor's running balances in one atomic update
func (r *VendorRepository) ApplyBalanceDelta(ctx context.Context, id primitive.ObjectID, delta domainRepos.BalanceDelta) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{
			"pendingBalance":   delta.Pending,
			"availableBalance": delta.Available,
			"totalSales":       delta.Sales,
			"totalEarnings":    delta.Earnings,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a vendor document
func (r *VendorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteAll removes every vendor document
func (r *VendorRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns vendors filtered by status with pagination. Empty status
// means all vendors.
func (r *VendorRepository) List(ctx context.Context, status entities.VendorStatus, limit, offset int) ([]*entities.Vendor, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var vendors []*entities.Vendor
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

// ListAll returns every vendor without pagination; used by the bulk delete
func (r *VendorRepository) ListAll(ctx context.Context) ([]*entities.Vendor, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vendors []*entities.Vendor
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}
