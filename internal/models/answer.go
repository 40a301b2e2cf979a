package models

// Answer records the selected option's machine value for one question.
// A session holds at most one Answer per question id.
type Answer struct {
	QuestionID string `bson:"question_id" json:"question_id"`
	Value      int    `bson:"value" json:"value"`
}
