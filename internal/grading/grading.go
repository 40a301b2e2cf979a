// Package grading turns a completed answer set into normalized per-trait
// scores. Scoring is pure: no clock, no randomness, identical inputs give
// bit-identical outputs.
package grading

import (
	"fmt"
	"sort"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
)

// Score accumulates each answer's contribution to its trait and
// normalizes by the maximum attainable contribution for that trait, so
// every score lands in [0, 1] regardless of how many questions feed the
// trait.
//
// Answers are accumulated in question-id order: float addition is not
// associative, and the contract is bit-identical scores for identical
// answer sets.
func Score(answers []models.Answer, scheme *models.TraitScheme) (map[string]float64, error) {
	if scheme == nil || len(scheme.Entries) == 0 {
		return nil, &apperr.ConfigurationError{Msg: "no scoring scheme configured"}
	}

	ordered := make([]models.Answer, len(answers))
	copy(ordered, answers)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].QuestionID < ordered[j].QuestionID
	})

	totals := make(map[string]float64)
	for _, a := range ordered {
		entry, ok := scheme.Entries[a.QuestionID]
		if !ok {
			return nil, &apperr.ConfigurationError{
				Msg: fmt.Sprintf("scheme for phase %q has no entry for question %q", scheme.Phase, a.QuestionID),
			}
		}
		totals[entry.Trait] += entry.Contributions[a.Value]
	}

	maxima := scheme.TraitMaxima()
	scores := make(map[string]float64, len(totals))
	for trait, total := range totals {
		if max := maxima[trait]; max > 0 {
			scores[trait] = total / max
		} else {
			scores[trait] = 0
		}
	}
	return scores, nil
}
