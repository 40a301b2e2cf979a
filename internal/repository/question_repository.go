package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

// FindByPhase returns the ordered question set for an instrument. Daily
// questions are excluded here; they are scoped to a roadmap day.
func (r *QuestionRepository) FindByPhase(ctx context.Context, phase models.Phase) ([]models.Question, error) {
	return r.find(ctx, bson.M{"phase": phase, "roadmap_id": bson.M{"$exists": false}})
}

// FindByDay returns the ordered daily quiz for one roadmap day.
func (r *QuestionRepository) FindByDay(ctx context.Context, roadmapID string, dayNumber int) ([]models.Question, error) {
	return r.find(ctx, bson.M{
		"phase":      models.PhaseDaily,
		"roadmap_id": roadmapID,
		"day_number": dayNumber,
	})
}

func (r *QuestionRepository) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}
