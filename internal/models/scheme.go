package models

// SchemeEntry defines how one question contributes to a trait. The
// Contributions map is keyed by option value; an option absent from the
// map contributes nothing.
type SchemeEntry struct {
	Trait         string          `bson:"trait" json:"trait"`
	Contributions map[int]float64 `bson:"contributions" json:"contributions"`
}

// MaxContribution is the largest score any single option can add to the
// entry's trait.
func (e SchemeEntry) MaxContribution() float64 {
	max := 0.0
	for _, c := range e.Contributions {
		if c > max {
			max = c
		}
	}
	return max
}

// TraitScheme is the trait-scoring scheme for one phase, owned by the
// content collaborator. Entries is keyed by question id.
type TraitScheme struct {
	ID        string                 `bson:"_id,omitempty" json:"id"`
	Phase     Phase                  `bson:"phase" json:"phase"`
	RoadmapID string                 `bson:"roadmap_id,omitempty" json:"roadmap_id,omitempty"`
	DayNumber int                    `bson:"day_number,omitempty" json:"day_number,omitempty"`
	Entries   map[string]SchemeEntry `bson:"entries" json:"entries"`
}

// TraitMaxima returns, per trait, the maximum attainable contribution
// across all questions in the scheme. Grading normalizes against these
// so scores are comparable between instruments with different question
// counts per trait.
func (s *TraitScheme) TraitMaxima() map[string]float64 {
	maxima := make(map[string]float64)
	for _, entry := range s.Entries {
		maxima[entry.Trait] += entry.MaxContribution()
	}
	return maxima
}
