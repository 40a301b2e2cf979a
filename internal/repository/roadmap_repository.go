package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RoadmapRepository struct {
	Col *mongo.Collection
}

func NewRoadmapRepository(db *mongo.Database) *RoadmapRepository {
	return &RoadmapRepository{Col: db.Collection("roadmaps")}
}

// FindByID returns the roadmap's day manifest, or (nil, nil) when the
// roadmap does not exist.
func (r *RoadmapRepository) FindByID(ctx context.Context, id string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&roadmap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roadmap, nil
}
