package service

import (
	"context"
	"strconv"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

// AttemptReader provides query access to the append-only attempt history.
type AttemptReader interface {
	FindByID(ctx context.Context, id string) (*models.AssessmentAttempt, error)
	FindByUser(ctx context.Context, userID string) ([]models.AssessmentAttempt, error)
	FindLatestByDay(ctx context.Context, roadmapID string, dayNumber int) (*models.AssessmentAttempt, error)
}

type AttemptService struct {
	Repo AttemptReader
}

func NewAttemptService(repo AttemptReader) *AttemptService {
	return &AttemptService{Repo: repo}
}

// GetHistory returns every attempt for the user, newest first. Repeat
// submissions are independent entries; "current score" is the head of
// this list.
func (s *AttemptService) GetHistory(ctx context.Context, userID string) ([]models.AssessmentAttempt, error) {
	attempts, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "attempt history", Err: err}
	}
	if attempts == nil {
		// A user with no attempts gets an empty list, not JSON null.
		attempts = []models.AssessmentAttempt{}
	}
	return attempts, nil
}

func (s *AttemptService) GetDetail(ctx context.Context, attemptID string) (*models.AssessmentAttempt, error) {
	attempt, err := s.Repo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "attempt lookup", Err: err}
	}
	if attempt == nil {
		return nil, &apperr.NotFoundError{Resource: "attempt", ID: attemptID}
	}
	return attempt, nil
}

// GetDayResult returns the latest daily attempt for a roadmap day.
func (s *AttemptService) GetDayResult(ctx context.Context, roadmapID string, dayNumber int) (*models.AssessmentAttempt, error) {
	attempt, err := s.Repo.FindLatestByDay(ctx, roadmapID, dayNumber)
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "day result lookup", Err: err}
	}
	if attempt == nil {
		return nil, &apperr.NotFoundError{
			Resource: "day result",
			ID:       roadmapID + "/day/" + strconv.Itoa(dayNumber),
		}
	}
	return attempt, nil
}
