package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindful-chat/db"
	"mindful-chat/models"
)

type SessionRepository struct {
	col        *mongo.Collection
	maxRetries int
}

func NewSessionRepository(database *mongo.Database, maxRetries int) *SessionRepository {
	return &SessionRepository{col: database.Collection(db.CollectionSessions), maxRetries: maxRetries}
}

// Insert stores a new session document. ID must already be assigned.
func (r *SessionRepository) Insert(ctx context.Context, s *models.Session) error {
	return insertWithRetry(ctx, r.col, r.maxRetries, s)
}

// Touch sets updated_at on an existing session.
// 반환값 false 는 해당 id 의 세션이 없다는 뜻이다.
func (r *SessionRepository) Touch(ctx context.Context, id string, at time.Time) (bool, error) {
	var matched bool
	err := withRetry(ctx, r.maxRetries, "touch session", func(ctx context.Context) error {
		res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"updated_at": at}})
		if err != nil {
			return err
		}
		matched = res.MatchedCount > 0
		return nil
	})
	return matched, err
}

// ListRecent returns up to limit sessions, most recently updated first.
func (r *SessionRepository) ListRecent(ctx context.Context, limit int) ([]models.Session, error) {
	findOpts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	var results []models.Session
	err := withRetry(ctx, r.maxRetries, "list sessions", func(ctx context.Context) error {
		cur, err := r.col.Find(ctx, bson.M{}, findOpts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		results = make([]models.Session, 0, limit)
		return cur.All(ctx, &results)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
