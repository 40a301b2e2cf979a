package repository

import (
	"context"
	"time"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CompletionRepository struct {
	Col *mongo.Collection
}

func NewCompletionRepository(db *mongo.Database) *CompletionRepository {
	return &CompletionRepository{Col: db.Collection("completions")}
}

// EnsureIndexes creates the uniqueness constraint that makes MarkComplete
// idempotent under concurrent calls. Must run before the service accepts
// traffic.
func (r *CompletionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "roadmap_id", Value: 1},
			{Key: "day_number", Value: 1},
			{Key: "resource_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// MarkComplete records the completion if it is not already recorded.
// $setOnInsert fixes completed_at at the first successful call; every
// later call, including a concurrent loser of the upsert race, is a
// successful no-op.
func (r *CompletionRepository) MarkComplete(ctx context.Context, roadmapID string, dayNumber int, resourceID string) error {
	filter := bson.M{
		"roadmap_id":  roadmapID,
		"day_number":  dayNumber,
		"resource_id": resourceID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"roadmap_id":   roadmapID,
			"day_number":   dayNumber,
			"resource_id":  resourceID,
			"completed_at": time.Now(),
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *CompletionRepository) FindByRoadmap(ctx context.Context, roadmapID string) ([]models.ResourceCompletion, error) {
	cur, err := r.Col.Find(ctx, bson.M{"roadmap_id": roadmapID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var completions []models.ResourceCompletion
	for cur.Next(ctx) {
		var c models.ResourceCompletion
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, nil
}
