package service

import (
	"context"
	"fmt"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

// RoadmapSource provides day manifests.
type RoadmapSource interface {
	FindByID(ctx context.Context, id string) (*models.Roadmap, error)
}

// CompletionStore records and lists resource completions.
type CompletionStore interface {
	MarkComplete(ctx context.Context, roadmapID string, dayNumber int, resourceID string) error
	FindByRoadmap(ctx context.Context, roadmapID string) ([]models.ResourceCompletion, error)
}

type ProgressService struct {
	Roadmaps    RoadmapSource
	Completions CompletionStore
}

func NewProgressService(roadmaps RoadmapSource, completions CompletionStore) *ProgressService {
	return &ProgressService{Roadmaps: roadmaps, Completions: completions}
}

// MarkComplete records a completion after validating the (day, resource)
// pair against the roadmap manifest. Calling it again for the same key is
// a successful no-op; there is no uncomplete operation.
func (s *ProgressService) MarkComplete(ctx context.Context, roadmapID string, dayNumber int, resourceID string) error {
	roadmap, err := s.loadRoadmap(ctx, roadmapID)
	if err != nil {
		return err
	}
	day := roadmap.Day(dayNumber)
	if day == nil {
		return &apperr.ValidationError{Msg: fmt.Sprintf("roadmap %q has no day %d", roadmapID, dayNumber)}
	}
	found := false
	for _, res := range day.Resources {
		if res.ID == resourceID {
			found = true
			break
		}
	}
	if !found {
		return &apperr.ValidationError{Msg: fmt.Sprintf("resource %q is not in day %d of roadmap %q", resourceID, dayNumber, roadmapID)}
	}

	if err := s.Completions.MarkComplete(ctx, roadmapID, dayNumber, resourceID); err != nil {
		return &apperr.TransientStorageError{Op: "mark complete", Err: err}
	}
	return nil
}

// GetTaskProgress recomputes day-level and roadmap-level completion from
// the completion records and the manifest on every call. Nothing is
// cached, so the snapshot cannot drift from the records. Only resources
// present in the manifest are counted; a day with no resources reports
// 0/0.
func (s *ProgressService) GetTaskProgress(ctx context.Context, roadmapID string) (*models.ProgressSnapshot, error) {
	roadmap, err := s.loadRoadmap(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	completions, err := s.Completions.FindByRoadmap(ctx, roadmapID)
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "completion load", Err: err}
	}

	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[completionKey(c.DayNumber, c.ResourceID)] = true
	}

	snapshot := &models.ProgressSnapshot{
		RoadmapID: roadmapID,
		Days:      make(map[int]models.DayProgress, len(roadmap.Days)),
	}
	for _, day := range roadmap.Days {
		progress := models.DayProgress{Total: len(day.Resources)}
		for _, res := range day.Resources {
			if done[completionKey(day.DayNumber, res.ID)] {
				progress.Completed++
			}
		}
		snapshot.Days[day.DayNumber] = progress
		snapshot.Completed += progress.Completed
		snapshot.Total += progress.Total
	}
	if snapshot.Total > 0 {
		snapshot.Percent = float64(snapshot.Completed) / float64(snapshot.Total)
	}
	return snapshot, nil
}

func (s *ProgressService) loadRoadmap(ctx context.Context, roadmapID string) (*models.Roadmap, error) {
	roadmap, err := s.Roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "roadmap load", Err: err}
	}
	if roadmap == nil {
		return nil, &apperr.NotFoundError{Resource: "roadmap", ID: roadmapID}
	}
	return roadmap, nil
}

func completionKey(dayNumber int, resourceID string) string {
	return fmt.Sprintf("%d/%s", dayNumber, resourceID)
}
