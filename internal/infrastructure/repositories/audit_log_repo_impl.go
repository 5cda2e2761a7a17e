package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"market-hub.backend/internal/domain/entities"
	"market-hub.backend/internal/infrastructure/datasources/mongodb"
)

// AuditLogRepository implements the append-only audit trail over MongoDB
type AuditLogRepository struct {
	col *mongo.Collection
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *mongodb.Database) *AuditLogRepository {
	return &AuditLogRepository{col: db.AuditLogs()}
}

// Create appends an audit record
func (r *AuditLogRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}

// List returns audit records, newest first
func (r *AuditLogRepository) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error) {
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

	var entries []*entities.AuditLog
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
