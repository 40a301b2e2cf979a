package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SchemeRepository struct {
	Col *mongo.Collection
}

func NewSchemeRepository(db *mongo.Database) *SchemeRepository {
	return &SchemeRepository{Col: db.Collection("schemes")}
}

// FindByPhase returns the trait-scoring scheme for an instrument, or
// (nil, nil) when none is configured. The grading pipeline treats a nil
// scheme as a configuration error.
func (r *SchemeRepository) FindByPhase(ctx context.Context, phase models.Phase) (*models.TraitScheme, error) {
	var scheme models.TraitScheme
	err := r.Col.FindOne(ctx, bson.M{"phase": phase}).Decode(&scheme)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}

// FindByDay returns the scheme for one roadmap day's daily quiz.
func (r *SchemeRepository) FindByDay(ctx context.Context, roadmapID string, dayNumber int) (*models.TraitScheme, error) {
	filter := bson.M{
		"phase":      models.PhaseDaily,
		"roadmap_id": roadmapID,
		"day_number": dayNumber,
	}
	var scheme models.TraitScheme
	err := r.Col.FindOne(ctx, filter).Decode(&scheme)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}
