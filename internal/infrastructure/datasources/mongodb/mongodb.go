package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	UsersCollection          = "users"
	VendorsCollection        = "vendors"
	ProductsCollection       = "products"
	OrdersCollection         = "orders"
	ReviewsCollection        = "reviews"
	ReviewRequestsCollection = "review_requests"
	PayoutsCollection        = "payouts"
	CouponsCollection        = "coupons"
	AuditLogsCollection      = "audit_logs"
)

// Legacy vendor index names left behind by a prior schema. They collide with
// the current unique constraints and must not exist.
var legacyVendorIndexes = []string{"shopName_1", "userId_1"}

// Database wraps the mongo client and exposes typed collection handles
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, pings it, and returns the wrapped database
func Connect(ctx context.Context, uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{client: client, db: client.Database(name)}, nil
}

// NewDatabase wraps an existing client (used for testing)
func NewDatabase(client *mongo.Client, name string) *Database {
	return &Database{client: client, db: client.Database(name)}
}

// Client returns the underlying mongo client
func (d *Database) Client() *mongo.Client {
	return d.client
}

// Disconnect closes the underlying client
func (d *Database) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *Database) Users() *mongo.Collection    { return d.db.Collection(UsersCollection) }
func (d *Database) Vendors() *mongo.Collection  { return d.db.Collection(VendorsCollection) }
func (d *Database) Products() *mongo.Collection { return d.db.Collection(ProductsCollection) }
func (d *Database) Orders() *mongo.Collection   { return d.db.Collection(OrdersCollection) }
func (d *Database) Reviews() *mongo.Collection  { return d.db.Collection(ReviewsCollection) }
func (d *Database) ReviewRequests() *mongo.Collection {
	return d.db.Collection(ReviewRequestsCollection)
}
func (d *Database) Payouts() *mongo.Collection   { return d.db.Collection(PayoutsCollection) }
func (d *Database) Coupons() *mongo.Collection   { return d.db.Collection(CouponsCollection) }
func (d *Database) AuditLogs() *mongo.Collection { return d.db.Collection(AuditLogsCollection) }

// Migrate runs the idempotent index migration. Request handlers assume a
// clean schema; this runs before the server accepts traffic.
func (d *Database) Migrate(ctx context.Context) ([]string, error) {
	var actions []string

	dropped, err := d.dropLegacyVendorIndexes(ctx)
	if err != nil {
		return actions, err
	}
	actions = append(actions, dropped...)

	created, err := d.ensureIndexes(ctx)
	if err != nil {
		return actions, err
	}
	actions = append(actions, created...)

	return actions, nil
}

// FixVendorIndexes repairs only the vendor collection indexes. Exposed as an
// admin maintenance endpoint; safe to call repeatedly.
func (d *Database) FixVendorIndexes(ctx context.Context) ([]string, error) {
	var actions []string

	dropped, err := d.dropLegacyVendorIndexes(ctx)
	if err != nil {
		return actions, err
	}
	actions = append(actions, dropped...)

	if err := d.ensureVendorIndexes(ctx); err != nil {
		return actions, err
	}
	actions = append(actions, "ensured ownerUser_1 (unique, sparse)", "ensured storeSlug_1 (unique)")

	return actions, nil
}

func (d *Database) dropLegacyVendorIndexes(ctx context.Context) ([]string, error) {
	cur, err := d.Vendors().Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor indexes: %w", err)
	}
	defer cur.Close(ctx)

	existing := map[string]bool{}
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			return nil, err
		}
		if name, ok := idx["name"].(string); ok {
			existing[name] = true
		}
	}

	var actions []string
	for _, name := range legacyVendorIndexes {
		if !existing[name] {
			continue
		}
		if _, err := d.Vendors().Indexes().DropOne(ctx, name); err != nil {
			return actions, fmt.Errorf("failed to drop legacy index %s: %w", name, err)
		}
		actions = append(actions, "dropped legacy index "+name)
	}
	return actions, nil
}

func (d *Database) ensureVendorIndexes(ctx context.Context) error {
	_, err := d.Vendors().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerUser", Value: 1}},
			Options: options.Index().SetName("ownerUser_1").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "storeSlug", Value: 1}},
			Options: options.Index().SetName("storeSlug_1").SetUnique(true),
		},
	})
	return err
}

func (d *Database) ensureIndexes(ctx context.Context) ([]string, error) {
	if err := d.ensureVendorIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure vendor indexes: %w", err)
	}
	actions := []string{"ensured ownerUser_1 (unique, sparse)", "ensured storeSlug_1 (unique)"}

	if _, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_1").SetUnique(true),
	}); err != nil {
		return actions, fmt.Errorf("failed to ensure user indexes: %w", err)
	}
	actions = append(actions, "ensured users email_1 (unique)")

	if _, err := d.ReviewRequests().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reviewToken", Value: 1}},
			Options: options.Index().SetName("reviewToken_1").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}, {Key: "productId", Value: 1}},
			Options: options.Index().SetName("orderId_1_productId_1"),
		},
	}); err != nil {
		return actions, fmt.Errorf("failed to ensure review request indexes: %w", err)
	}
	actions = append(actions, "ensured review_requests reviewToken_1 (unique)")

	if _, err := d.Coupons().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("code_1").SetUnique(true),
	}); err != nil {
		return actions, fmt.Errorf("failed to ensure coupon indexes: %w", err)
	}
	actions = append(actions, "ensured coupons code_1 (unique)")

	return actions, nil
}
