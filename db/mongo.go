package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mindful-chat/config"
)

const (
	CollectionSessions     = "sessions"
	CollectionMessages     = "messages"
	CollectionStatusChecks = "status_checks"
	CollectionAILogs       = "ai_logs"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Env.MongoURL
		if uri == "" {
			// Fallback for local docker-compose default
			uri = "mongodb://localhost:27017"
		}
		dbName := cfg.Env.DBName
		if dbName == "" {
			dbName = "mindful_chat"
		}

		cl, err := mongo.NewClient(options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cl.Connect(ctx); err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		config.Logger.Infof("MongoDB connected and indexes ensured (db=%s)", dbName)
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Ping checks the primary is reachable. Used by the health endpoint.
func Ping(ctx context.Context) error {
	if db == nil {
		return mongo.ErrClientDisconnected
	}
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// sessions: most recently updated first
	if _, err := d.Collection(CollectionSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: -1}},
		Options: options.Index().SetName("idx_updated_at_desc"),
	}); err != nil {
		return err
	}

	// messages: per-session log ordered by timestamp, then time-ordered id
	if _, err := d.Collection(CollectionMessages).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_session_timestamp"),
	}); err != nil {
		return err
	}

	if _, err := d.Collection(CollectionStatusChecks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_timestamp_desc"),
	}); err != nil {
		return err
	}

	if _, err := d.Collection(CollectionAILogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "requested_at", Value: -1}},
		Options: options.Index().SetName("idx_requested_at_desc"),
	}); err != nil {
		return err
	}
	return nil
}
