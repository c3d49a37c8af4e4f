package domain

import "time"

// ExercisePlan is a reusable plan owned by the trainer who created it.
// Ownership is immutable. Other trainers must not learn the plan exists,
// which is why cross-trainer access is reported as not-found.
type ExercisePlan struct {
	ID        string          `json:"id"`
	TrainerID int64           `json:"trainerId"`
	Name      string          `json:"name"`
	Exercises []ExerciseEntry `json:"exercises"` // Required non-empty
	CreatedAt time.Time       `json:"createdAt"`
}

// PlanAssignment links a plan to a user. Created by the plan's owning
// trainer, but visible to the user regardless of which trainer assigned it.
type PlanAssignment struct {
	PlanID    string    `json:"planId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
