package domain

import "time"

// ExerciseEntry is one exercise within a workout or a plan. The fields are
// caller-supplied and minimally validated; only Name is required.
type ExerciseEntry struct {
	Name string `json:"name"`
	Sets int    `json:"sets,omitempty"`
	Reps int    `json:"reps,omitempty"`
	Load string `json:"load,omitempty"` // Free-form, e.g. "60kg" or "bodyweight"
}

// Workout is a logged session: a calendar date plus an ordered exercise
// sequence, owned by exactly one account. IDs are opaque UUIDs.
type Workout struct {
	ID        string          `json:"id"`
	OwnerID   int64           `json:"ownerId"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Exercises []ExerciseEntry `json:"exercises"`
	CreatedAt time.Time       `json:"createdAt"`
}
