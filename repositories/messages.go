package repositories

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindful-chat/db"
	"mindful-chat/models"
)

type MessageRepository struct {
	col        *mongo.Collection
	maxRetries int
}

func NewMessageRepository(database *mongo.Database, maxRetries int) *MessageRepository {
	return &MessageRepository{col: database.Collection(db.CollectionMessages), maxRetries: maxRetries}
}

// Insert appends a message. Messages are never updated or deleted.
func (r *MessageRepository) Insert(ctx context.Context, m *models.Message) error {
	return insertWithRetry(ctx, r.col, r.maxRetries, m)
}

// ListRecent returns the last limit messages of a session, oldest first.
func (r *MessageRepository) ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	// 최신순으로 limit 개를 가져온 뒤 뒤집는다.
	findOpts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})
	results, err := r.find(ctx, "list recent messages", sessionID, findOpts)
	if err != nil {
		return nil, err
	}
	slices.Reverse(results)
	return results, nil
}

// ListBySession returns the whole log of a session, oldest first.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Message, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: 1},
		{Key: "_id", Value: 1},
	})
	return r.find(ctx, "list session messages", sessionID, findOpts)
}

func (r *MessageRepository) find(ctx context.Context, name, sessionID string, findOpts *options.FindOptions) ([]models.Message, error) {
	var results []models.Message
	err := withRetry(ctx, r.maxRetries, name, func(ctx context.Context) error {
		cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, findOpts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		results = []models.Message{}
		return cur.All(ctx, &results)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
