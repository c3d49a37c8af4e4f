package domain

import "time"

// WeightEntry is keyed by (owner, date): at most one measurement per owner
// per calendar day, upsert replaces the whole row (last write wins).
type WeightEntry struct {
	OwnerID   int64     `json:"ownerId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Value     float64   `json:"value"`
	Goal      *float64  `json:"goal,omitempty"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
