package domain

import "time"

// ProgressPhoto stores metadata about an owner's progress picture.
// The actual file resides in object storage under ObjectKey.
type ProgressPhoto struct {
	ID          string    `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	ObjectKey   string    `json:"-"` // Internal storage key, never exposed
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	TakenAt     string    `json:"takenAt,omitempty"` // YYYY-MM-DD, caller supplied
	CreatedAt   time.Time `json:"createdAt"`
}
