// Package session drives the resumable quiz-session state machine. The
// machine owns the in-memory answer ledger for one (user, phase) pair and
// mirrors every mutation to an injected Store so the session survives
// reloads.
package session

import (
	"context"
	"log"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

type State string

const (
	StateLoading       State = "loading"
	StateInProgress    State = "in_progress"
	StateReadyToSubmit State = "ready_to_submit"
	StateSubmitting    State = "submitting"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
)

// Store is the persistence port for session mirroring. Load returns
// (nil, nil) when no session is stored for the key.
type Store interface {
	Load(ctx context.Context, userID string, phase models.Phase) (*models.PersistedSession, error)
	Save(ctx context.Context, userID string, phase models.Phase, s *models.PersistedSession) error
	Clear(ctx context.Context, userID string, phase models.Phase) error
}

// Machine walks an ordered question set linearly. No two operations on
// the same Machine run concurrently; each session belongs to a single
// request flow.
type Machine struct {
	userID    string
	phase     models.Phase
	questions []models.Question
	store     Store

	state   State
	cursor  int
	answers map[string]int
}

func New(userID string, phase models.Phase, questions []models.Question, store Store) *Machine {
	return &Machine{
		userID:    userID,
		phase:     phase,
		questions: questions,
		store:     store,
		state:     StateLoading,
		answers:   make(map[string]int),
	}
}

// Restore loads the persisted session for this (user, phase). A missing
// or unreadable record starts a fresh session.
func (m *Machine) Restore(ctx context.Context) {
	persisted, err := m.store.Load(ctx, m.userID, m.phase)
	if err != nil {
		log.Printf("session restore failed for %s/%s, starting fresh: %v", m.userID, m.phase, err)
		persisted = nil
	}
	m.RestoreFrom(persisted)
}

// RestoreFrom reconciles an already-loaded record against the active
// question set: answers referencing unknown questions or options are
// dropped, an out-of-range cursor resets to 0. A nil record starts fresh.
func (m *Machine) RestoreFrom(persisted *models.PersistedSession) {
	if persisted != nil {
		for _, a := range persisted.Answers {
			if q := m.question(a.QuestionID); q != nil && q.HasOption(a.Value) {
				m.answers[a.QuestionID] = a.Value
			}
		}
		if persisted.Cursor >= 0 && persisted.Cursor < len(m.questions) {
			m.cursor = persisted.Cursor
		}
	}
	m.state = StateInProgress
	m.refreshReady()
}

// SelectAnswer upserts the answer for questionID and mirrors the session
// to the store. Re-selecting the same question overwrites, it does not
// append. When the cursor question now has an answer, the cursor advances
// by one if another question remains.
func (m *Machine) SelectAnswer(ctx context.Context, questionID string, value int) error {
	if m.state != StateInProgress && m.state != StateReadyToSubmit {
		return &apperr.ValidationError{Msg: "session is " + string(m.state) + ", answers are closed"}
	}
	q := m.question(questionID)
	if q == nil {
		return &apperr.ValidationError{Msg: "question " + questionID + " is not part of this quiz"}
	}
	if !q.HasOption(value) {
		return &apperr.ValidationError{Msg: "question " + questionID + " has no such option"}
	}

	m.answers[questionID] = value

	if _, ok := m.answers[m.questions[m.cursor].ID]; ok && m.cursor+1 < len(m.questions) {
		m.cursor++
	}
	m.refreshReady()

	m.persist(ctx)
	return nil
}

// GoTo moves the cursor. Out-of-range indices are rejected as a no-op and
// the return value reports whether the cursor moved.
func (m *Machine) GoTo(ctx context.Context, index int) bool {
	if index < 0 || index >= len(m.questions) {
		return false
	}
	if m.state != StateInProgress && m.state != StateReadyToSubmit {
		return false
	}
	m.cursor = index
	m.persist(ctx)
	return true
}

// Submit validates completeness, hands the full answer set to grade and
// settles the session. A validation failure leaves the state untouched. A
// grading failure moves to Failed but keeps the persisted mirror so the
// user can retry without re-answering. Success clears the mirror so the
// next load starts a fresh quiz.
func (m *Machine) Submit(ctx context.Context, grade func(context.Context, []models.Answer) error) error {
	if m.state != StateInProgress && m.state != StateReadyToSubmit {
		return &apperr.ValidationError{Msg: "session is " + string(m.state) + ", cannot submit"}
	}
	if missing := m.MissingQuestionIDs(); len(missing) > 0 {
		return &apperr.ValidationError{
			Msg:                "quiz incomplete",
			MissingCount:       len(missing),
			MissingQuestionIDs: missing,
		}
	}

	m.state = StateSubmitting
	if err := grade(ctx, m.Answers()); err != nil {
		m.state = StateFailed
		return err
	}
	m.state = StateCompleted

	if err := m.store.Clear(ctx, m.userID, m.phase); err != nil {
		// The attempt is already recorded; a stale mirror only means the
		// next load briefly resumes a finished quiz before expiry.
		log.Printf("failed to clear session %s/%s after submit: %v", m.userID, m.phase, err)
	}
	return nil
}

// Answers returns the ledger in question order.
func (m *Machine) Answers() []models.Answer {
	answers := make([]models.Answer, 0, len(m.answers))
	for _, q := range m.questions {
		if v, ok := m.answers[q.ID]; ok {
			answers = append(answers, models.Answer{QuestionID: q.ID, Value: v})
		}
	}
	return answers
}

// MissingQuestionIDs lists unanswered questions in question order.
func (m *Machine) MissingQuestionIDs() []string {
	var missing []string
	for _, q := range m.questions {
		if _, ok := m.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Cursor() int  { return m.cursor }

// Snapshot is the record mirrored to the store.
func (m *Machine) Snapshot() *models.PersistedSession {
	return &models.PersistedSession{
		Cursor:  m.cursor,
		Answers: m.Answers(),
		SavedAt: time.Now(),
	}
}

func (m *Machine) question(id string) *models.Question {
	for i := range m.questions {
		if m.questions[i].ID == id {
			return &m.questions[i]
		}
	}
	return nil
}

func (m *Machine) refreshReady() {
	if m.state != StateInProgress && m.state != StateReadyToSubmit {
		return
	}
	if len(m.answers) == len(m.questions) {
		m.state = StateReadyToSubmit
	} else {
		m.state = StateInProgress
	}
}

// persist mirrors the session after a mutation. Mirror failures are
// logged, not surfaced: the user keeps answering and the next write-through
// carries the full snapshot, so at most the latest answer is at risk.
func (m *Machine) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.userID, m.phase, m.Snapshot()); err != nil {
		log.Printf("session mirror write failed for %s/%s: %v", m.userID, m.phase, err)
	}
}
