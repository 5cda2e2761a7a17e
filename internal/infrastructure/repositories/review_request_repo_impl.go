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

// ReviewRequestRepository implements review-request data operations over
// MongoDB
type ReviewRequestRepository struct {
	col *mongo.Collection
}

// NewReviewRequestRepository creates a new review request repository
func NewReviewRequestRepository(db *mongodb.Database) *ReviewRequestRepository {
	return &ReviewRequestRepository{col: db.ReviewRequests()}
}

// Create creates a new review request
func (r *ReviewRequestRepository) Create(ctx context.Context, request *entities.ReviewRequest) error {
	request.ID = primitive.NewObjectID()
	request.CustomerEmail = utils.NormalizeEmail(request.CustomerEmail)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	_, err := r.col.InsertOne(ctx, request)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a review request by ID
func (r *ReviewRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.ReviewRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByToken gets a review request by its public token
func (r *ReviewRequestRepository) GetByToken(ctx context.Context, token string) (*entities.ReviewRequest, error) {
	return r.findOne(ctx, bson.M{"reviewToken": token})
}

// GetActiveByOrderProduct returns a pending or sent request for the
// (order, product) pair
func (r *ReviewRequestRepository) GetActiveByOrderProduct(ctx context.Context, orderID, productID primitive.ObjectID) (*entities.ReviewRequest, error) {
	return r.findOne(ctx, bson.M{
		"orderId":   orderID,
		"productId": productID,
		"status":    bson.M{"$in": []entities.ReviewRequestStatus{entities.ReviewRequestPending, entities.ReviewRequestSent}},
	})
}

func (r *ReviewRequestRepository) findOne(ctx context.Context, filter bson.M) (*entities.ReviewRequest, error) {
	var request entities.ReviewRequest
	err := r.col.FindOne(ctx, filter).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns review requests filtered by either status axis
func (r *ReviewRequestRepository) List(ctx context.Context, status entities.ReviewRequestStatus, adminStatus entities.ReviewRequestAdminStatus, limit, offset int) ([]*entities.ReviewRequest, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if adminStatus != "" {
		filter["adminStatus"] = adminStatus
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

	var requests []*entities.ReviewRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListExpiredActive returns pending or sent requests whose review window
// closed before the given instant
func (r *ReviewRequestRepository) ListExpiredActive(ctx context.Context, before time.Time, limit int) ([]*entities.ReviewRequest, error) {
	filter := bson.M{
		"status":    bson.M{"$in": []entities.ReviewRequestStatus{entities.ReviewRequestPending, entities.ReviewRequestSent}},
		"expiresAt": bson.M{"$lt": before},
	}

	opts := options.Find().SetSort(bson.D{{Key: "expiresAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []*entities.ReviewRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ExpireMany flips the given requests to expired in one write
func (r *ReviewRequestRepository) ExpireMany(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": entities.ReviewRequestExpired, "updatedAt": time.Now()}},
	)
	return err
}

// MarkSent flips the request to sent after a successful email delivery
func (r *ReviewRequestRepository) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.update(ctx, id, bson.M{
		"status": entities.ReviewRequestSent,
		"sentAt": at,
	})
}

// MarkOpened records the first email open
func (r *ReviewRequestRepository) MarkOpened(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.update(ctx, id, bson.M{
		"emailOpened":   true,
		"emailOpenedAt": at,
	})
}

// MarkExpired lazily expires the request on access
func (r *ReviewRequestRepository) MarkExpired(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, id, bson.M{"status": entities.ReviewRequestExpired})
}

// MarkReviewed links the created review and resets the moderation axis so
// the submission re-enters the moderation queue
func (r *ReviewRequestRepository) MarkReviewed(ctx context.Context, id, reviewID primitive.ObjectID, at time.Time) error {
	return r.update(ctx, id, bson.M{
		"status":      entities.ReviewRequestReviewed,
		"reviewId":    reviewID,
		"reviewedAt":  at,
		"adminStatus": entities.ReviewRequestAdminPending,
	})
}

// SetStatus sets the customer-facing status
func (r *ReviewRequestRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestStatus) error {
	return r.update(ctx, id, bson.M{"status": status})
}

// SetAdminStatus sets the moderation status
func (r *ReviewRequestRepository) SetAdminStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestAdminStatus) error {
	return r.update(ctx, id, bson.M{"adminStatus": status})
}

func (r *ReviewRequestRepository) update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
