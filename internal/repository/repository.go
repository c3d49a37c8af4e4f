package repository

import (
	"context"

	"fittrack/fitness-api/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, account *domain.Account) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error) // Case-insensitive lookup
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	// Delete removes the account; owned resources and assignment edges on
	// both ends go with it via the schema's cascade rules.
	Delete(ctx context.Context, id int64) error
}

// AssignmentRepository maintains the trainer-to-user edges.
type AssignmentRepository interface {
	Add(ctx context.Context, trainerID, userID int64) error
	// Remove reports whether an edge was actually deleted; removing an
	// absent edge is not an error.
	Remove(ctx context.Context, trainerID, userID int64) (bool, error)
	ListUsersFor(ctx context.Context, trainerID int64) ([]domain.Account, error)
	IsAssigned(ctx context.Context, trainerID, userID int64) (bool, error)
}

// ProfileRepository stores the single optional profile per account.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Profile, error)
	DeleteByOwner(ctx context.Context, ownerID int64) error
}

// WorkoutRepository stores owner-scoped workout sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workout, error)
	DeleteByIDAndOwner(ctx context.Context, id string, ownerID int64) (bool, error)
}

// WeightRepository stores one entry per owner per calendar date.
type WeightRepository interface {
	// UpsertByOwnerAndDate atomically replaces the row for (owner, date);
	// last write wins, no conflict surfaced to the caller.
	UpsertByOwnerAndDate(ctx context.Context, entry *domain.WeightEntry) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.WeightEntry, error)
}

// CalorieRepository stores owner-scoped meal entries with sequential ids.
type CalorieRepository interface {
	Create(ctx context.Context, entry *domain.CalorieEntry) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.CalorieEntry, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error)
}

// PlanRepository stores exercise plans and the plan-to-user edges.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.ExercisePlan) error
	GetByID(ctx context.Context, id string) (*domain.ExercisePlan, error)
	ListByCreator(ctx context.Context, trainerID int64) ([]domain.ExercisePlan, error)
	ListAll(ctx context.Context) ([]domain.ExercisePlan, error)
	DeleteByIDAndCreator(ctx context.Context, id string, trainerID int64) (bool, error)
	AssignToUser(ctx context.Context, planID string, userID int64) error
	UnassignFromUser(ctx context.Context, planID string, userID int64) (bool, error)
	ListAssignedToUser(ctx context.Context, userID int64) ([]domain.ExercisePlan, error)
}

// PhotoRepository stores progress photo metadata; files live in object storage.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) error
	GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*domain.ProgressPhoto, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.ProgressPhoto, error)
	DeleteByIDAndOwner(ctx context.Context, id string, ownerID int64) (bool, error)
}

// DataResetRepository wipes everything one owner has recorded, atomically.
type DataResetRepository interface {
	// ResetOwnerData deletes the owner's profile, workouts, weights,
	// calories and photo metadata in a single transaction. It returns the
	// object keys of the deleted photos so the caller can clean up storage.
	ResetOwnerData(ctx context.Context, ownerID int64) ([]string, error)
}
