package grading

import (
	"errors"
	"testing"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

// likertScheme builds a Big-Five-style scheme: each question feeds one
// trait, options are valued 1-5 and contribute their own value.
func likertScheme(traitByQuestion map[string]string) *models.TraitScheme {
	entries := make(map[string]models.SchemeEntry, len(traitByQuestion))
	for qid, trait := range traitByQuestion {
		entries[qid] = models.SchemeEntry{
			Trait:         trait,
			Contributions: map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5},
		}
	}
	return &models.TraitScheme{Phase: models.PhasePersonality, Entries: entries}
}

func TestScoreMidpoint(t *testing.T) {
	scheme := likertScheme(map[string]string{
		"q1": "openness",
		"q2": "openness",
		"q3": "conscientiousness",
		"q4": "conscientiousness",
		"q5": "extraversion",
	})
	answers := []models.Answer{
		{QuestionID: "q1", Value: 3},
		{QuestionID: "q2", Value: 3},
		{QuestionID: "q3", Value: 3},
		{QuestionID: "q4", Value: 3},
		{QuestionID: "q5", Value: 3},
	}

	scores, err := Score(answers, scheme)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	// All-neutral on a 1-5 Likert lands every trait at 3/5, the midpoint
	// of the attainable range, regardless of questions per trait.
	for trait, score := range scores {
		if score != 0.6 {
			t.Errorf("trait %s: expected 0.6, got %v", trait, score)
		}
	}
	if len(scores) != 3 {
		t.Errorf("expected 3 traits, got %d", len(scores))
	}
}

func TestScoreDeterministicUnderReordering(t *testing.T) {
	scheme := likertScheme(map[string]string{
		"q1": "realistic", "q2": "realistic", "q3": "realistic",
		"q4": "artistic", "q5": "artistic",
	})
	forward := []models.Answer{
		{QuestionID: "q1", Value: 2},
		{QuestionID: "q2", Value: 5},
		{QuestionID: "q3", Value: 1},
		{QuestionID: "q4", Value: 4},
		{QuestionID: "q5", Value: 3},
	}
	backward := make([]models.Answer, len(forward))
	for i, a := range forward {
		backward[len(forward)-1-i] = a
	}

	first, err := Score(forward, scheme)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	second, err := Score(backward, scheme)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	for trait, v := range first {
		if second[trait] != v {
			t.Errorf("trait %s not bit-identical across orderings: %v vs %v", trait, v, second[trait])
		}
	}
}

func TestScoreBounded(t *testing.T) {
	scheme := likertScheme(map[string]string{"q1": "openness", "q2": "openness"})
	answers := []models.Answer{
		{QuestionID: "q1", Value: 5},
		{QuestionID: "q2", Value: 5},
	}
	scores, err := Score(answers, scheme)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scores["openness"] != 1.0 {
		t.Errorf("maxed answers should normalize to 1, got %v", scores["openness"])
	}
}

func TestScoreDailyKeyedOptions(t *testing.T) {
	// Daily MCQs: the keyed option contributes 1, everything else 0, so a
	// topic's score is the fraction answered correctly.
	scheme := &models.TraitScheme{
		Phase: models.PhaseDaily,
		Entries: map[string]models.SchemeEntry{
			"d1q1": {Trait: "sql_basics", Contributions: map[int]float64{2: 1}},
			"d1q2": {Trait: "sql_basics", Contributions: map[int]float64{0: 1}},
		},
	}
	scores, err := Score([]models.Answer{
		{QuestionID: "d1q1", Value: 2}, // correct
		{QuestionID: "d1q2", Value: 3}, // wrong
	}, scheme)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scores["sql_basics"] != 0.5 {
		t.Errorf("expected 0.5 for one of two correct, got %v", scores["sql_basics"])
	}
}

func TestScoreMissingScheme(t *testing.T) {
	var cfgErr *apperr.ConfigurationError

	_, err := Score([]models.Answer{{QuestionID: "q1", Value: 1}}, nil)
	if !errors.As(err, &cfgErr) {
		t.Errorf("nil scheme: expected ConfigurationError, got %v", err)
	}

	empty := &models.TraitScheme{Phase: models.PhasePersonality}
	_, err = Score([]models.Answer{{QuestionID: "q1", Value: 1}}, empty)
	if !errors.As(err, &cfgErr) {
		t.Errorf("empty scheme: expected ConfigurationError, got %v", err)
	}
}

func TestScoreUnknownQuestion(t *testing.T) {
	scheme := likertScheme(map[string]string{"q1": "openness"})
	_, err := Score([]models.Answer{{QuestionID: "mystery", Value: 1}}, scheme)

	var cfgErr *apperr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError for unknown question, got %v", err)
	}
}
