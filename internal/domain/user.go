package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the three enumerated roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Account represents a registered identity. Every account starts with
// RoleUser; only an admin can change the role afterwards.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"` // Unique, compared case-insensitively
	PasswordHash string    `json:"-"`        // Never expose this via JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *Account) IsTrainer() bool {
	return a.Role == RoleTrainer
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
