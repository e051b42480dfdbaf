package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"product-compare/internal/logger"
	"product-compare/config"
)

const (
	CollectionUsers     = "users"
	CollectionSummaries = "summaries"
	CollectionAILogs    = "ai_logs"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the process-wide Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig().Mongo

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			initErr = err
			return
		}
		client = cl
		db = client.Database(cfg.Database)

		if err := EnsureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{
			"database": cfg.Database,
		})
	})
	return initErr
}

func Database() *mongo.Database { return db }

// Close disconnects the client created by Init. Safe to call when Init failed.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique email
	if _, err := d.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}); err != nil {
		return err
	}

	// summaries: owner listing by recency, plus full text
	{
		if _, err := d.Collection(CollectionSummaries).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created_at_desc"),
		}); err != nil {
			return err
		}
		if _, err := d.Collection(CollectionSummaries).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "extracted.title", Value: "text"}, {Key: "ai_summary", Value: "text"}},
			Options: options.Index().SetName("txt_title_summary"),
		}); err != nil {
			return err
		}
	}

	// ai_logs: requested_at desc
	if _, err := d.Collection(CollectionAILogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "requested_at", Value: -1}},
		Options: options.Index().SetName("idx_requested_at_desc"),
	}); err != nil {
		return err
	}
	return nil
}
