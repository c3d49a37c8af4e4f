package domain

import "time"

// Assignment is a directed trainer-to-user edge. While the edge exists the
// trainer may read the user's designated resources (currently weight entries)
// and assign plans to them. The pair is unique; a user may be assigned to
// several trainers and a trainer manages any number of users.
type Assignment struct {
	TrainerID int64     `json:"trainerId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
