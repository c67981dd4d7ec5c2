package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	CollectionServices = "services"
	CollectionBookings = "bookings"
	CollectionUsers    = "users"
	CollectionDoctors  = "doctors"
	CollectionReviews  = "reviews"
	CollectionPayments = "payments"
	CollectionMenu     = "menu"
	CollectionCarts    = "carts"
)

// Connect opens the process-wide client and checks it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes backing account and booking
// uniqueness. Existing duplicates make creation fail; that is logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	indexes := map[string]mongo.IndexModel{
		CollectionUsers: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		CollectionBookings: {
			Keys: bson.D{
				{Key: "treatment", Value: 1},
				{Key: "date", Value: 1},
				{Key: "patient", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_treatment_date_patient"),
		},
	}

	for coll, model := range indexes {
		name, err := db.Collection(coll).Indexes().CreateOne(ctx, model)
		if err != nil {
			log.Warn("could not create index", zap.String("collection", coll), zap.Error(err))
			continue
		}
		log.Debug("index ready", zap.String("collection", coll), zap.String("index", name))
	}
}
