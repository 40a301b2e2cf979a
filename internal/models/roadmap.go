package models

import "time"

// Resource is a single completable unit of content within a roadmap day,
// e.g. a video or article.
type Resource struct {
	ID              string `bson:"id" json:"id"`
	Title           string `bson:"title" json:"title"`
	Type            string `bson:"type" json:"type"` // video, article, exercise, project
	DurationMinutes int    `bson:"duration_minutes" json:"duration_minutes"`
}

// RoadmapDay bundles the ordered resources for one day. DayNumber is
// 1-based and contiguous within a roadmap. A day may have no resources
// (a rest day).
type RoadmapDay struct {
	DayNumber int        `bson:"day_number" json:"day_number"`
	Title     string     `bson:"title" json:"title"`
	Resources []Resource `bson:"resources" json:"resources"`
}

// Roadmap is the day manifest for one generated learning plan. The
// manifest itself is produced by the content collaborator; this service
// only reads it for validation and progress aggregation.
type Roadmap struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	UserID       string       `bson:"user_id" json:"user_id"`
	CareerDomain string       `bson:"career_domain" json:"career_domain"`
	TotalDays    int          `bson:"total_days" json:"total_days"`
	Days         []RoadmapDay `bson:"days" json:"days"`
}

// Day returns the manifest for dayNumber, or nil when the roadmap has no
// such day.
func (r *Roadmap) Day(dayNumber int) *RoadmapDay {
	for i := range r.Days {
		if r.Days[i].DayNumber == dayNumber {
			return &r.Days[i]
		}
	}
	return nil
}

// ResourceCompletion marks one resource complete. Existence of the record
// means complete; absence means incomplete. Unique by
// (roadmap_id, day_number, resource_id); CompletedAt is fixed at the first
// successful call.
type ResourceCompletion struct {
	RoadmapID   string    `bson:"roadmap_id" json:"roadmap_id"`
	DayNumber   int       `bson:"day_number" json:"day_number"`
	ResourceID  string    `bson:"resource_id" json:"resource_id"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}

// DayProgress is the derived completion count for one day.
type DayProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressSnapshot is derived on every read from the completion records
// and the roadmap manifest. It is never stored, so it cannot drift.
type ProgressSnapshot struct {
	RoadmapID string              `json:"roadmap_id"`
	Days      map[int]DayProgress `json:"days"`
	Completed int                 `json:"completed"`
	Total     int                 `json:"total"`
	Percent   float64             `json:"percent"`
}
