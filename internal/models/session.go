package models

import "time"

// PersistedSession is the durable mirror of an in-flight quiz session,
// one record per (user, phase). It is what survives a page reload and is
// removed on successful submission.
type PersistedSession struct {
	Cursor  int       `json:"cursor"`
	Answers []Answer  `json:"answers"`
	SavedAt time.Time `json:"saved_at"`
}
