// Package orderlog is the document-store adapter for the append-only
// order_logs collection. Entries are not transactional with the relational
// store and may be lost or duplicated without affecting order correctness.
package orderlog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant/internal/database"
	"restaurant/internal/models"
)

// Store appends and reads order log documents.
type Store interface {
	Append(ctx context.Context, entry models.OrderLogEntry) error
	ListByOrder(ctx context.Context, orderID uint) ([]bson.M, error)
	List(ctx context.Context, filter Filter) ([]bson.M, error)
}

// Filter narrows List. A zero OrderID means every entry.
type Filter struct {
	OrderID uint
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(database.OrderLogsCollection)}
}

func (s *MongoStore) Append(ctx context.Context, entry models.OrderLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func (s *MongoStore) ListByOrder(ctx context.Context, orderID uint) ([]bson.M, error) {
	return s.List(ctx, Filter{OrderID: orderID})
}

// List returns raw documents with _id projected out, in insertion order.
func (s *MongoStore) List(ctx context.Context, filter Filter) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.OrderID != 0 {
		query["order_id"] = filter.OrderID
	}

	cursor, err := s.coll.Find(ctx, query, options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "$natural", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
