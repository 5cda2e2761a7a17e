package repositories

import (
	"context"
	"regexp"
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

// OrderRepository implements order data operations over MongoDB
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *mongodb.Database) *OrderRepository {
	return &OrderRepository{col: db.Orders()}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	_, err := r.col.InsertOne(ctx, order)
	return err
}

// GetByID gets an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Order, error) {
	var order entities.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders with pagination
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*entities.Order, int64, error) {
	return r.list(ctx, bson.M{}, limit, offset)
}

// ListByUser returns a user's orders with pagination
func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	return r.list(ctx, bson.M{"userId": userID}, limit, offset)
}

// ListByVendor returns orders containing at least one of the vendor's items
func (r *OrderRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	return r.list(ctx, bson.M{"items.vendorId": vendorID}, limit, offset)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*entities.Order, int64, error) {
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

	var orders []*entities.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// AppendStatus sets the top-level status and appends the history entry in
// one update
func (r *OrderRepository) AppendStatus(ctx context.Context, id primitive.ObjectID, entry entities.StatusHistoryEntry) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"status": entry.Status, "updatedAt": time.Now()},
		"$push": bson.M{"statusHistory": entry},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVendorItemStatus updates one line item's fulfillment state
func (r *OrderRepository) SetVendorItemStatus(ctx context.Context, orderID, vendorID, productID primitive.ObjectID, status entities.VendorItemStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{
			"$set": bson.M{
				"items.$[item].vendorStatus": status,
				"updatedAt":                  time.Now(),
			},
		},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"item.vendorId": vendorID, "item.productId": productID},
			},
		}),
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVendorSummaryPayoutStatus updates one vendor summary's payout state
func (r *OrderRepository) SetVendorSummaryPayoutStatus(ctx context.Context, orderID, vendorID primitive.ObjectID, status entities.PayoutStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": orderID, "vendorSummaries.vendorId": vendorID},
		bson.M{
			"$set": bson.M{
				"vendorSummaries.$.payoutStatus": status,
				"updatedAt":                      time.Now(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkFailed records a failed payment on the order
func (r *OrderRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, reason, code string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"paymentStatus": entities.PaymentStatusFailed,
			"failReason":    reason,
			"failCode":      code,
			"updatedAt":     time.Now(),
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

// SetNotificationEnabled flips the per-order failed-notification switch
func (r *OrderRepository) SetNotificationEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"failedOrderNotificationEnabled": enabled, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementFailedNotification bumps the counter and appends the timestamp,
// guarded by the ceiling in the filter itself so concurrent senders can
// never push the per-order count past the cap. A ceiling of zero or less
// drops the guard entirely for forced sends.
func (r *OrderRepository) IncrementFailedNotification(ctx context.Context, id primitive.ObjectID, ceiling int, at time.Time) (bool, error) {
	filter := bson.M{"_id": id}
	if ceiling > 0 {
		filter["failedOrderNotificationsSent"] = bson.M{"$lt": ceiling}
	}
	res, err := r.col.UpdateOne(ctx,
		filter,
		bson.M{
			"$inc":  bson.M{"failedOrderNotificationsSent": 1},
			"$push": bson.M{"failedOrderNotificationsSentAt": at},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// SumFailedNotifications totals notification counters across all FAILED
// orders of the same customer
func (r *OrderRepository) SumFailedNotifications(ctx context.Context, userID *primitive.ObjectID, guestEmail string) (int, error) {
	match := bson.M{"paymentStatus": entities.PaymentStatusFailed}
	switch {
	case userID != nil:
		match["userId"] = *userID
	case guestEmail != "":
		match["guestCustomer.email"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(utils.NormalizeEmail(guestEmail)) + "$",
			"$options": "i",
		}
	default:
		return 0, domainerrors.ErrInvalidInput
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$failedOrderNotificationsSent"}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ListReviewCandidates returns delivered orders eligible for review
// requests. With explicit ids only those orders are considered; otherwise
// every delivered order not yet processed qualifies.
func (r *OrderRepository) ListReviewCandidates(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Order, error) {
	filter := bson.M{"status": entities.OrderStatusDelivered}
	if len(ids) > 0 {
		filter["_id"] = bson.M{"$in": ids}
	} else {
		filter["reviewRequestsSent"] = false
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []*entities.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetReviewRequestsSent flips the per-order review marker
func (r *OrderRepository) SetReviewRequestsSent(ctx context.Context, id primitive.ObjectID, sent bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"reviewRequestsSent": sent, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
