package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

// Create inserts the attempt as a single document, so either the whole
// attempt is visible or none of it is. Attempts are never updated.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.AssessmentAttempt) error {
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

// FindByID returns the attempt, or (nil, nil) when it does not exist.
func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByUser returns the user's attempt history, newest first.
func (r *AttemptRepository) FindByUser(ctx context.Context, userID string) ([]models.AssessmentAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.AssessmentAttempt
	for cur.Next(ctx) {
		var a models.AssessmentAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// FindLatestByDay returns the most recent daily attempt for a roadmap day,
// or (nil, nil) when the day has not been assessed.
func (r *AttemptRepository) FindLatestByDay(ctx context.Context, roadmapID string, dayNumber int) (*models.AssessmentAttempt, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	filter := bson.M{
		"phase":      models.PhaseDaily,
		"roadmap_id": roadmapID,
		"day_number": dayNumber,
	}
	var attempt models.AssessmentAttempt
	err := r.Col.FindOne(ctx, filter, opts).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
