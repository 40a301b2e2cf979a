package models

// Phase identifies the assessment instrument being taken.
type Phase string

const (
	// PhasePersonality is the Big-Five-style trait inventory.
	PhasePersonality Phase = "personality"
	// PhaseInterest is the RIASEC-style interest inventory.
	PhaseInterest Phase = "interest"
	// PhaseDaily is the knowledge check attached to a roadmap day.
	PhaseDaily Phase = "daily"
)

// AllPhases lists every instrument the service knows how to grade.
var AllPhases = []Phase{PhasePersonality, PhaseInterest, PhaseDaily}

func (p Phase) IsValid() bool {
	for _, known := range AllPhases {
		if p == known {
			return true
		}
	}
	return false
}

// RequiresDay reports whether attempts for this phase must be scoped to
// a roadmap day.
func (p Phase) RequiresDay() bool {
	return p == PhaseDaily
}
