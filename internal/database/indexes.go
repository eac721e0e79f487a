package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	OrderLogsCollection = "order_logs"
	SessionsCollection  = "sessions"
)

func EnsureOrderLogIndexes(db *mongo.Database, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(OrderLogsCollection).Indexes()

	orderIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("order_id_created_at"),
	}

	log.Info("EnsureOrderLogIndexes: creating order_id_created_at index")
	if _, err := indexes.CreateOne(ctx, orderIDIndex); err != nil {
		log.WithError(err).Error("EnsureOrderLogIndexes: order_id index error")
		return err
	}
	log.Info("EnsureOrderLogIndexes: order_id_created_at index created")
	return nil
}

func EnsureSessionIndexes(db *mongo.Database, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(SessionsCollection).Indexes()

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tokenHash", Value: 1}},
			Options: options.Index().
				SetName("tokenHash_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().
				SetName("expiresAt_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	log.Info("EnsureSessionIndexes: creating tokenHash_unique and expiresAt_ttl indexes")
	if _, err := indexes.CreateMany(ctx, sessionIndexes); err != nil {
		log.WithError(err).Error("EnsureSessionIndexes: index error")
		return err
	}
	log.Info("EnsureSessionIndexes: session indexes created")
	return nil
}
