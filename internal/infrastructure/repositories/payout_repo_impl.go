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

// PayoutRepository implements payout data operations over MongoDB
type PayoutRepository struct {
	col *mongo.Collection
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *mongodb.Database) *PayoutRepository {
	return &PayoutRepository{col: db.Payouts()}
}

// Create creates a new payout request
func (r *PayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	payout.ID = primitive.NewObjectID()
	payout.RequestedAt = time.Now()

	_, err := r.col.InsertOne(ctx, payout)
	return err
}

// GetByID gets a payout by ID
func (r *PayoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Payout, error) {
	var payout entities.Payout
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&payout)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// SetStatus moves the payout through its lifecycle
func (r *PayoutRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.PayoutRequestStatus, note string, processedAt time.Time) error {
	set := bson.M{"status": status, "processedAt": processedAt}
	if note != "" {
		set["note"] = note
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

// ListByVendor returns a vendor's payouts with pagination
func (r *PayoutRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Payout, int64, error) {
	return r.list(ctx, bson.M{"vendorId": vendorID}, limit, offset)
}

// List returns payouts filtered by status. Empty status means all.
func (r *PayoutRepository) List(ctx context.Context, status entities.PayoutRequestStatus, limit, offset int) ([]*entities.Payout, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, limit, offset)
}

func (r *PayoutRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*entities.Payout, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var payouts []*entities.Payout
	if err := cur.All(ctx, &payouts); err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}

// DeleteByVendor removes every payout of the vendor; part of vendor deletion
func (r *PayoutRepository) DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteAll removes every payout; part of the admin-wide vendor wipe
func (r *PayoutRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
