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

// ReviewRepository implements review data operations over MongoDB
type ReviewRepository struct {
	col *mongo.Collection
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *mongodb.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Reviews()}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	review.ID = primitive.NewObjectID()
	review.ReviewerEmail = utils.NormalizeEmail(review.ReviewerEmail)
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	_, err := r.col.InsertOne(ctx, review)
	return err
}

// GetByID gets a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Review, error) {
	var review entities.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func reviewerFilter(productID primitive.ObjectID, userID *primitive.ObjectID, email string) bson.M {
	filter := bson.M{"productId": productID}
	if userID != nil {
		filter["userId"] = *userID
	} else {
		filter["reviewerEmail"] = utils.NormalizeEmail(email)
	}
	return filter
}

// GetByProductAndReviewer finds an existing review for the product by the
// same registered user or guest email
func (r *ReviewRepository) GetByProductAndReviewer(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (*entities.Review, error) {
	var review entities.Review
	err := r.col.FindOne(ctx, reviewerFilter(productID, userID, email)).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// HasApprovedReview reports whether the reviewer already has an approved
// review for the product
func (r *ReviewRepository) HasApprovedReview(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (bool, error) {
	filter := reviewerFilter(productID, userID, email)
	filter["status"] = entities.ReviewStatusApproved

	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetStatus moves the review through moderation
func (r *ReviewRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewStatus, approved bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"isApproved": approved,
			"updatedAt":  time.Now(),
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

// ListByProduct returns a product's reviews with pagination
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID primitive.ObjectID, limit, offset int) ([]*entities.Review, int64, error) {
	filter := bson.M{"productId": productID}

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

	var reviews []*entities.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// RatingStats aggregates average rating and count over approved reviews
func (r *ReviewRepository) RatingStats(ctx context.Context, productID primitive.ObjectID) (float64, int, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"productId": productID, "status": entities.ReviewStatusApproved}},
		{"$group": bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Average, results[0].Count, nil
}
