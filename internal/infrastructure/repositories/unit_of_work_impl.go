package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"market-hub.backend/internal/infrastructure/datasources/mongodb"
)

// MongoUnitOfWork runs a function inside a MongoDB multi-document transaction.
// Repository calls made with the session context become part of the transaction.
type MongoUnitOfWork struct {
	client *mongo.Client
}

// NewMongoUnitOfWork creates a new transactional unit of work
func NewMongoUnitOfWork(db *mongodb.Database) *MongoUnitOfWork {
	return &MongoUnitOfWork{client: db.Client()}
}

// Do executes fn within a transaction. The transaction commits when fn
// returns nil and aborts when it returns an error.
func (u *MongoUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
