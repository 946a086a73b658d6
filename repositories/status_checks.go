package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindful-chat/db"
	"mindful-chat/models"
)

const maxStatusChecks = 1000

type StatusCheckRepository struct {
	col        *mongo.Collection
	maxRetries int
}

func NewStatusCheckRepository(database *mongo.Database, maxRetries int) *StatusCheckRepository {
	return &StatusCheckRepository{col: database.Collection(db.CollectionStatusChecks), maxRetries: maxRetries}
}

func (r *StatusCheckRepository) Insert(ctx context.Context, s *models.StatusCheck) error {
	return insertWithRetry(ctx, r.col, r.maxRetries, s)
}

// List returns stored status checks, newest first.
func (r *StatusCheckRepository) List(ctx context.Context) ([]models.StatusCheck, error) {
	findOpts := options.Find().SetLimit(maxStatusChecks).SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var results []models.StatusCheck
	err := withRetry(ctx, r.maxRetries, "list status checks", func(ctx context.Context) error {
		cur, err := r.col.Find(ctx, bson.M{}, findOpts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		results = []models.StatusCheck{}
		return cur.All(ctx, &results)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
