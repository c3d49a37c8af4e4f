package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// workoutRepository implements repository.WorkoutRepository.
type workoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new workout repository.
func NewWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	exercises, err := json.Marshal(workout.Exercises)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workouts (id, owner_id, workout_date, exercises, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		workout.ID, workout.OwnerID, workout.Date, exercises, now)
	if err != nil {
		return mapError(err)
	}
	workout.CreatedAt = now
	return nil
}

// ListByOwner returns the owner's workouts, newest date first.
func (r *workoutRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, workout_date, exercises, created_at
		 FROM workouts WHERE owner_id = $1
		 ORDER BY workout_date DESC, created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		var (
			w         domain.Workout
			exercises []byte
		)
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Date, &exercises, &w.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// DeleteByIDAndOwner removes the workout only if the owner matches, and
// reports whether a row was deleted.
func (r *workoutRepository) DeleteByIDAndOwner(ctx context.Context, id string, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM workouts WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
