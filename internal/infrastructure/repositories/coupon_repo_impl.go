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
)

// CouponRepository implements coupon data operations over MongoDB
type CouponRepository struct {
	col *mongo.Collection
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *mongodb.Database) *CouponRepository {
	return &CouponRepository{col: db.Coupons()}
}

// Create creates a new coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.Code = entities.NormalizeCouponCode(coupon.Code)
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt

	_, err := r.col.InsertOne(ctx, coupon)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a coupon by ID
func (r *CouponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Coupon, error) {
	var coupon entities.Coupon
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// GetByCode gets a coupon by normalized code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	var coupon entities.Coupon
	err := r.col.FindOne(ctx, bson.M{"code": entities.NormalizeCouponCode(code)}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update replaces the coupon document
func (r *CouponRepository) Update(ctx context.Context, coupon *entities.Coupon) error {
	coupon.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": coupon.ID}, coupon)
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

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns coupons with pagination
func (r *CouponRepository) List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int64, error) {
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

	var coupons []*entities.Coupon
	if err := cur.All(ctx, &coupons); err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// IncrementUsage bumps usedCount only while below maxUses. An unlimited
// coupon (maxUses 0) always increments.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	filter := bson.M{
		"code": entities.NormalizeCouponCode(code),
		"$or": []bson.M{
			{"maxUses": bson.M{"$lte": 0}},
			{"$expr": bson.M{"$lt": []string{"$usedCount", "$maxUses"}}},
		},
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
