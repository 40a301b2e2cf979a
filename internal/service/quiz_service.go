package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/grading"
	"assessment-service/internal/models"
	"assessment-service/internal/session"

	"github.com/google/uuid"
)

// QuestionSource provides the ordered question sets owned by the content
// collaborator.
type QuestionSource interface {
	FindByPhase(ctx context.Context, phase models.Phase) ([]models.Question, error)
	FindByDay(ctx context.Context, roadmapID string, dayNumber int) ([]models.Question, error)
}

// SchemeSource provides trait-scoring schemes.
type SchemeSource interface {
	FindByPhase(ctx context.Context, phase models.Phase) (*models.TraitScheme, error)
	FindByDay(ctx context.Context, roadmapID string, dayNumber int) (*models.TraitScheme, error)
}

// AttemptWriter persists graded attempts.
type AttemptWriter interface {
	Create(ctx context.Context, attempt *models.AssessmentAttempt) error
}

// SubmitResult is what a successful submission returns to the caller.
type SubmitResult struct {
	AttemptID   string             `json:"attempt_id"`
	TraitScores map[string]float64 `json:"trait_scores"`
}

type QuizService struct {
	Questions QuestionSource
	Schemes   SchemeSource
	Attempts  AttemptWriter
	Sessions  session.Store
}

func NewQuizService(questions QuestionSource, schemes SchemeSource, attempts AttemptWriter, sessions session.Store) *QuizService {
	return &QuizService{
		Questions: questions,
		Schemes:   schemes,
		Attempts:  attempts,
		Sessions:  sessions,
	}
}

// GetQuiz returns the ordered question set for an instrument, stripped of
// grading fields. For the daily phase, roadmapID and dayNumber select the
// day's knowledge check.
func (s *QuizService) GetQuiz(ctx context.Context, phase models.Phase, roadmapID string, dayNumber int) ([]models.Question, error) {
	questions, err := s.loadQuestions(ctx, phase, roadmapID, dayNumber)
	if err != nil {
		return nil, err
	}
	public := make([]models.Question, len(questions))
	for i, q := range questions {
		public[i] = q.Public()
	}
	return public, nil
}

// SubmitQuiz runs the grading pipeline: the submitted answers are replayed
// through the session machine, validated for completeness, scored against
// the phase's scheme and persisted as an append-only attempt. The
// persisted session mirror is cleared only after the attempt write
// succeeds.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID string, phase models.Phase, answers []models.Answer, roadmapID string, dayNumber int) (*SubmitResult, error) {
	questions, err := s.loadQuestions(ctx, phase, roadmapID, dayNumber)
	if err != nil {
		return nil, err
	}

	m := session.New(userID, phase, questions, s.Sessions)
	m.Restore(ctx)
	for _, a := range answers {
		if err := m.SelectAnswer(ctx, a.QuestionID, a.Value); err != nil {
			return nil, err
		}
	}

	var result *SubmitResult
	err = m.Submit(ctx, func(ctx context.Context, complete []models.Answer) error {
		scheme, err := s.loadScheme(ctx, phase, roadmapID, dayNumber)
		if err != nil {
			return err
		}
		scores, err := grading.Score(complete, scheme)
		if err != nil {
			return err
		}
		attempt := &models.AssessmentAttempt{
			ID:          uuid.NewString(),
			UserID:      userID,
			Phase:       phase,
			RoadmapID:   roadmapID,
			DayNumber:   dayNumber,
			SubmittedAt: time.Now(),
			TraitScores: scores,
			RawAnswers:  complete,
		}
		if err := s.Attempts.Create(ctx, attempt); err != nil {
			return &apperr.TransientStorageError{Op: "attempt create", Err: err}
		}
		result = &SubmitResult{AttemptID: attempt.ID, TraitScores: scores}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResumeSession returns the persisted session for (user, phase), restored
// through the machine so stale answers and cursors are reconciled against
// the current question set.
func (s *QuizService) ResumeSession(ctx context.Context, userID string, phase models.Phase, roadmapID string, dayNumber int) (*models.PersistedSession, error) {
	questions, err := s.loadQuestions(ctx, phase, roadmapID, dayNumber)
	if err != nil {
		return nil, err
	}
	persisted, err := s.Sessions.Load(ctx, userID, phase)
	if err != nil {
		var transient *apperr.TransientStorageError
		if errors.As(err, &transient) {
			return nil, err
		}
		// An unreadable record is as good as an absent one; it will be
		// replaced by the next write-through or expire on its own.
		log.Printf("discarding unreadable session for %s/%s: %v", userID, phase, err)
		persisted = nil
	}
	if persisted == nil {
		return nil, &apperr.NotFoundError{Resource: "session", ID: userID + "/" + string(phase)}
	}
	m := session.New(userID, phase, questions, s.Sessions)
	m.RestoreFrom(persisted)
	return m.Snapshot(), nil
}

// SaveSession validates a client-driven session snapshot against the
// active question set and write-throughs it, replacing whatever mirror
// was stored before.
func (s *QuizService) SaveSession(ctx context.Context, userID string, phase models.Phase, persisted *models.PersistedSession, roadmapID string, dayNumber int) error {
	questions, err := s.loadQuestions(ctx, phase, roadmapID, dayNumber)
	if err != nil {
		return err
	}
	if persisted.Cursor < 0 || persisted.Cursor >= len(questions) {
		return &apperr.ValidationError{Msg: fmt.Sprintf("cursor %d out of range", persisted.Cursor)}
	}

	// Replay through a detached machine so the snapshot obeys the same
	// ledger rules as interactive answering. Nothing reaches the store
	// until every answer has been validated, so a rejected snapshot
	// leaves any previously stored mirror untouched.
	m := session.New(userID, phase, questions, discardStore{})
	m.RestoreFrom(nil)
	for _, a := range persisted.Answers {
		if err := m.SelectAnswer(ctx, a.QuestionID, a.Value); err != nil {
			return err
		}
	}
	m.GoTo(ctx, persisted.Cursor)
	return s.Sessions.Save(ctx, userID, phase, m.Snapshot())
}

// discardStore satisfies session.Store without persisting anything, for
// replaying a snapshot through the machine before the real write.
type discardStore struct{}

func (discardStore) Load(context.Context, string, models.Phase) (*models.PersistedSession, error) {
	return nil, nil
}

func (discardStore) Save(context.Context, string, models.Phase, *models.PersistedSession) error {
	return nil
}

func (discardStore) Clear(context.Context, string, models.Phase) error {
	return nil
}

func (s *QuizService) loadQuestions(ctx context.Context, phase models.Phase, roadmapID string, dayNumber int) ([]models.Question, error) {
	if !phase.IsValid() {
		return nil, &apperr.NotFoundError{Resource: "phase", ID: string(phase)}
	}
	if phase.RequiresDay() && (roadmapID == "" || dayNumber < 1) {
		return nil, &apperr.ValidationError{Msg: "daily quizzes require roadmap_id and day_number"}
	}

	var (
		questions []models.Question
		err       error
	)
	if phase.RequiresDay() {
		questions, err = s.Questions.FindByDay(ctx, roadmapID, dayNumber)
	} else {
		questions, err = s.Questions.FindByPhase(ctx, phase)
	}
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "question load", Err: err}
	}
	if len(questions) == 0 {
		return nil, &apperr.NotFoundError{Resource: "quiz", ID: string(phase)}
	}
	return questions, nil
}

func (s *QuizService) loadScheme(ctx context.Context, phase models.Phase, roadmapID string, dayNumber int) (*models.TraitScheme, error) {
	var (
		scheme *models.TraitScheme
		err    error
	)
	if phase.RequiresDay() {
		scheme, err = s.Schemes.FindByDay(ctx, roadmapID, dayNumber)
	} else {
		scheme, err = s.Schemes.FindByPhase(ctx, phase)
	}
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "scheme load", Err: err}
	}
	if scheme == nil {
		return nil, &apperr.ConfigurationError{Msg: fmt.Sprintf("no scoring scheme for phase %q", phase)}
	}
	return scheme, nil
}
