package domain

import "time"

// CalorieEntry is one logged meal. IDs are sequential and assigned by the
// store. Owner-only resource: no trainer or admin read path.
type CalorieEntry struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Meal      string    `json:"meal"` // e.g. "breakfast", "lunch"
	Food      string    `json:"food"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein,omitempty"`
	Carbs     float64   `json:"carbs,omitempty"`
	Fat       float64   `json:"fat,omitempty"`
	Target    *float64  `json:"target,omitempty"` // Optional daily calorie target
	CreatedAt time.Time `json:"createdAt"`
}
