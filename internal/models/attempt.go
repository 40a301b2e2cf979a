package models

import "time"

// AssessmentAttempt is one completed, graded submission. Attempts are
// append-only: created exactly once per successful submission and never
// mutated. Repeat submissions for the same (user, phase) are independent
// history entries.
type AssessmentAttempt struct {
	ID          string             `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Phase       Phase              `bson:"phase" json:"phase"`
	RoadmapID   string             `bson:"roadmap_id,omitempty" json:"roadmap_id,omitempty"`
	DayNumber   int                `bson:"day_number,omitempty" json:"day_number,omitempty"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
	TraitScores map[string]float64 `bson:"trait_scores" json:"trait_scores"`
	RawAnswers  []Answer           `bson:"raw_answers" json:"raw_answers"`
}
