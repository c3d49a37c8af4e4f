package domain

import "time"

// Profile is the single optional free-form record attached to an account.
// Attributes are schema-on-read: stored and returned verbatim, never
// inspected by the core logic. One row per owner, replaced in place.
type Profile struct {
	OwnerID    int64          `json:"ownerId"`
	Attributes map[string]any `json:"attributes"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
