package models

// Option is one selectable answer for a question. Value is the machine
// value recorded in the answer; Label is what the client renders.
type Option struct {
	Value int    `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

type Question struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	Phase     Phase    `bson:"phase" json:"phase"`
	Prompt    string   `bson:"prompt" json:"prompt"`
	Options   []Option `bson:"options" json:"options"`
	Trait     string   `bson:"trait,omitempty" json:"trait,omitempty"`
	Order     int      `bson:"order" json:"order"`
	RoadmapID string   `bson:"roadmap_id,omitempty" json:"roadmap_id,omitempty"`
	DayNumber int      `bson:"day_number,omitempty" json:"day_number,omitempty"`
}

// HasOption reports whether value matches one of the question's options.
func (q *Question) HasOption(value int) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Public strips grading-relevant fields before the question leaves the
// service. Clients only need prompts and options.
func (q Question) Public() Question {
	q.Trait = ""
	return q
}
