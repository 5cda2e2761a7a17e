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

// ProductRepository implements catalog data operations over MongoDB
type ProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *mongodb.Database) *ProductRepository {
	return &ProductRepository{col: db.Products()}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	_, err := r.col.InsertOne(ctx, product)
	return err
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Product, error) {
	var product entities.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs fetches multiple products at once; missing ids are simply absent
// from the result
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []*entities.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update replaces the product document
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByVendor removes every product owned by the vendor
func (r *ProductRepository) DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns products with pagination
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error) {
	return r.list(ctx, bson.M{}, limit, offset)
}

// ListByVendor returns a vendor's products with pagination
func (r *ProductRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Product, int64, error) {
	return r.list(ctx, bson.M{"vendorId": vendorID}, limit, offset)
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*entities.Product, int64, error) {
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

	var products []*entities.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// SetRating stores the recomputed average rating and review count
func (r *ProductRepository) SetRating(ctx context.Context, id primitive.ObjectID, average float64, count int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"averageRating": average,
			"reviewCount":   count,
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
