package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

type fakeQuestions struct {
	byPhase map[models.Phase][]models.Question
}

func (f *fakeQuestions) FindByPhase(ctx context.Context, phase models.Phase) ([]models.Question, error) {
	return f.byPhase[phase], nil
}

func (f *fakeQuestions) FindByDay(ctx context.Context, roadmapID string, dayNumber int) ([]models.Question, error) {
	return f.byPhase[models.PhaseDaily], nil
}

type fakeSchemes struct {
	byPhase map[models.Phase]*models.TraitScheme
}

func (f *fakeSchemes) FindByPhase(ctx context.Context, phase models.Phase) (*models.TraitScheme, error) {
	return f.byPhase[phase], nil
}

func (f *fakeSchemes) FindByDay(ctx context.Context, roadmapID string, dayNumber int) (*models.TraitScheme, error) {
	return f.byPhase[models.PhaseDaily], nil
}

type fakeAttempts struct {
	created []*models.AssessmentAttempt
	err     error
}

func (f *fakeAttempts) Create(ctx context.Context, attempt *models.AssessmentAttempt) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, attempt)
	return nil
}

type fakeSessionStore struct {
	records map[string]*models.PersistedSession
	loadErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{records: make(map[string]*models.PersistedSession)}
}

func (s *fakeSessionStore) key(userID string, phase models.Phase) string {
	return userID + ":" + string(phase)
}

func (s *fakeSessionStore) Load(ctx context.Context, userID string, phase models.Phase) (*models.PersistedSession, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.records[s.key(userID, phase)], nil
}

func (s *fakeSessionStore) Save(ctx context.Context, userID string, phase models.Phase, p *models.PersistedSession) error {
	s.records[s.key(userID, phase)] = p
	return nil
}

func (s *fakeSessionStore) Clear(ctx context.Context, userID string, phase models.Phase) error {
	delete(s.records, s.key(userID, phase))
	return nil
}

func personalityQuestions() []models.Question {
	options := []models.Option{
		{Value: 1, Label: "Strongly disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Neutral"},
		{Value: 4, Label: "Agree"},
		{Value: 5, Label: "Strongly agree"},
	}
	traits := []string{"openness", "conscientiousness", "extraversion", "agreeableness", "neuroticism"}
	questions := make([]models.Question, 5)
	for i := range questions {
		questions[i] = models.Question{
			ID:      fmt.Sprintf("p%d", i+1),
			Phase:   models.PhasePersonality,
			Prompt:  "I see myself as...",
			Trait:   traits[i],
			Options: options,
			Order:   i + 1,
		}
	}
	return questions
}

func personalityScheme(questions []models.Question) *models.TraitScheme {
	entries := make(map[string]models.SchemeEntry, len(questions))
	for _, q := range questions {
		entries[q.ID] = models.SchemeEntry{
			Trait:         q.Trait,
			Contributions: map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5},
		}
	}
	return &models.TraitScheme{Phase: models.PhasePersonality, Entries: entries}
}

func newQuizFixture() (*QuizService, *fakeAttempts, *fakeSessionStore) {
	questions := personalityQuestions()
	attempts := &fakeAttempts{}
	store := newFakeSessionStore()
	svc := NewQuizService(
		&fakeQuestions{byPhase: map[models.Phase][]models.Question{models.PhasePersonality: questions}},
		&fakeSchemes{byPhase: map[models.Phase]*models.TraitScheme{models.PhasePersonality: personalityScheme(questions)}},
		attempts,
		store,
	)
	return svc, attempts, store
}

func fullAnswers(value int) []models.Answer {
	answers := make([]models.Answer, 5)
	for i := range answers {
		answers[i] = models.Answer{QuestionID: fmt.Sprintf("p%d", i+1), Value: value}
	}
	return answers
}

func TestSubmitQuizRecordsAttempt(t *testing.T) {
	svc, attempts, store := newQuizFixture()

	result, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(3), "", 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.AttemptID == "" {
		t.Error("expected a generated attempt id")
	}
	if len(attempts.created) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts.created))
	}
	attempt := attempts.created[0]
	if attempt.UserID != "user-1" || attempt.Phase != models.PhasePersonality {
		t.Errorf("attempt misattributed: %+v", attempt)
	}
	if len(attempt.RawAnswers) != 5 {
		t.Errorf("raw answers must snapshot the full set, got %d", len(attempt.RawAnswers))
	}
	for trait, score := range result.TraitScores {
		if score != 0.6 {
			t.Errorf("all-neutral submission: trait %s expected 0.6, got %v", trait, score)
		}
	}
	if store.records["user-1:personality"] != nil {
		t.Error("successful submit must clear the persisted session")
	}
}

func TestSubmitQuizMissingAnswers(t *testing.T) {
	svc, attempts, _ := newQuizFixture()

	_, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(3)[:3], "", 0)

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.MissingCount != 2 {
		t.Errorf("expected 2 missing answers, got %d", verr.MissingCount)
	}
	if len(attempts.created) != 0 {
		t.Error("incomplete submission must not create an attempt")
	}
}

func TestSubmitQuizResumesPersistedAnswers(t *testing.T) {
	svc, attempts, store := newQuizFixture()

	// Two answers were mirrored before the reload; the client submits the
	// remaining three.
	store.records["user-1:personality"] = &models.PersistedSession{
		Cursor: 2,
		Answers: []models.Answer{
			{QuestionID: "p1", Value: 4},
			{QuestionID: "p2", Value: 4},
		},
	}

	_, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, []models.Answer{
		{QuestionID: "p3", Value: 2},
		{QuestionID: "p4", Value: 2},
		{QuestionID: "p5", Value: 2},
	}, "", 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(attempts.created) != 1 || len(attempts.created[0].RawAnswers) != 5 {
		t.Fatalf("expected the restored and submitted answers to merge into 5")
	}
}

func TestSubmitQuizNoScheme(t *testing.T) {
	questions := personalityQuestions()
	svc := NewQuizService(
		&fakeQuestions{byPhase: map[models.Phase][]models.Question{models.PhasePersonality: questions}},
		&fakeSchemes{byPhase: map[models.Phase]*models.TraitScheme{}},
		&fakeAttempts{},
		newFakeSessionStore(),
	)

	_, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(3), "", 0)

	var cfgErr *apperr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestSubmitQuizStorageFailureKeepsSession(t *testing.T) {
	svc, attempts, store := newQuizFixture()
	attempts.err = errors.New("mongo down")

	_, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(3), "", 0)

	var transient *apperr.TransientStorageError
	if !errors.As(err, &transient) {
		t.Fatalf("expected TransientStorageError, got %v", err)
	}
	if store.records["user-1:personality"] == nil {
		t.Error("failed submit must keep the persisted session for retry")
	}
}

func TestDuplicateSubmissionsBothRecorded(t *testing.T) {
	svc, attempts, _ := newQuizFixture()

	first, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(3), "", 0)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := svc.SubmitQuiz(context.Background(), "user-1", models.PhasePersonality, fullAnswers(5), "", 0)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if len(attempts.created) != 2 {
		t.Fatalf("both submissions must be kept, got %d attempts", len(attempts.created))
	}
	if first.AttemptID == second.AttemptID {
		t.Error("attempts must have distinct ids")
	}
}

func TestGetQuizStripsGradingFields(t *testing.T) {
	svc, _, _ := newQuizFixture()

	questions, err := svc.GetQuiz(context.Background(), models.PhasePersonality, "", 0)
	if err != nil {
		t.Fatalf("get quiz failed: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Trait != "" {
			t.Errorf("question %s leaked its trait tag", q.ID)
		}
	}
}

func TestGetQuizUnknownPhase(t *testing.T) {
	svc, _, _ := newQuizFixture()

	_, err := svc.GetQuiz(context.Background(), models.Phase("astrology"), "", 0)

	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for unknown phase, got %v", err)
	}
}

func TestResumeSessionNotFound(t *testing.T) {
	svc, _, _ := newQuizFixture()

	_, err := svc.ResumeSession(context.Background(), "user-1", models.PhasePersonality, "", 0)

	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError when no session is stored, got %v", err)
	}
}

func TestResumeSessionUnreadableRecordNotFound(t *testing.T) {
	svc, _, store := newQuizFixture()
	store.loadErr = errors.New("corrupt session record for user-1/personality: unexpected end of JSON input")

	_, err := svc.ResumeSession(context.Background(), "user-1", models.PhasePersonality, "", 0)

	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("an unreadable record must read as absent, got %v", err)
	}
}

func TestResumeSessionTransientLoadError(t *testing.T) {
	svc, _, store := newQuizFixture()
	store.loadErr = &apperr.TransientStorageError{Op: "session load", Err: errors.New("redis down")}

	_, err := svc.ResumeSession(context.Background(), "user-1", models.PhasePersonality, "", 0)

	var transient *apperr.TransientStorageError
	if !errors.As(err, &transient) {
		t.Errorf("expected TransientStorageError, got %v", err)
	}
}

func TestSaveSessionWritesOnce(t *testing.T) {
	svc, _, store := newQuizFixture()

	err := svc.SaveSession(context.Background(), "user-1", models.PhasePersonality, &models.PersistedSession{
		Cursor: 1,
		Answers: []models.Answer{
			{QuestionID: "p1", Value: 4},
			{QuestionID: "p2", Value: 2},
		},
	}, "", 0)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	saved := store.records["user-1:personality"]
	if saved == nil {
		t.Fatal("expected the snapshot to be stored")
	}
	if saved.Cursor != 1 || len(saved.Answers) != 2 {
		t.Errorf("stored snapshot mismatch: %+v", saved)
	}
}

func TestSaveSessionRejectedSnapshotKeepsMirror(t *testing.T) {
	svc, _, store := newQuizFixture()

	prior := &models.PersistedSession{
		Cursor: 3,
		Answers: []models.Answer{
			{QuestionID: "p1", Value: 4},
			{QuestionID: "p2", Value: 4},
			{QuestionID: "p3", Value: 4},
			{QuestionID: "p4", Value: 4},
		},
	}
	store.records["user-1:personality"] = prior

	// The third answer references a question that is not in the quiz, so
	// the whole snapshot must be rejected without touching the mirror.
	err := svc.SaveSession(context.Background(), "user-1", models.PhasePersonality, &models.PersistedSession{
		Cursor: 2,
		Answers: []models.Answer{
			{QuestionID: "p1", Value: 1},
			{QuestionID: "p2", Value: 1},
			{QuestionID: "bogus", Value: 1},
		},
	}, "", 0)

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	after := store.records["user-1:personality"]
	if after != prior {
		t.Fatal("rejected snapshot must leave the stored mirror untouched")
	}
	if after.Cursor != 3 || len(after.Answers) != 4 {
		t.Errorf("stored mirror corrupted: %+v", after)
	}
}

func TestSaveSessionCursorOutOfRange(t *testing.T) {
	svc, _, store := newQuizFixture()

	err := svc.SaveSession(context.Background(), "user-1", models.PhasePersonality, &models.PersistedSession{
		Cursor:  5,
		Answers: []models.Answer{{QuestionID: "p1", Value: 1}},
	}, "", 0)

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.records["user-1:personality"] != nil {
		t.Error("rejected snapshot must not be stored")
	}
}
