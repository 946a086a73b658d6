package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindful-chat/db"
	"mindful-chat/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(database *mongo.Database) *AILogRepository {
	return &AILogRepository{col: database.Collection(db.CollectionAILogs)}
}

func (r *AILogRepository) Insert(ctx context.Context, log models.AILog) error {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, log)
	return err
}
