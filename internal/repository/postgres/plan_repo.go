package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// planRepository implements repository.PlanRepository.
type planRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new exercise plan repository.
func NewPlanRepository(db *sql.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.ExercisePlan) error {
	exercises, err := json.Marshal(plan.Exercises)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO exercise_plans (id, trainer_id, name, exercises, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		plan.ID, plan.TrainerID, plan.Name, exercises, now)
	if err != nil {
		return mapError(err)
	}
	plan.CreatedAt = now
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.ExercisePlan, error) {
	var (
		p         domain.ExercisePlan
		exercises []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, trainer_id, name, exercises, created_at
		 FROM exercise_plans WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.TrainerID, &p.Name, &exercises, &p.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(exercises, &p.Exercises); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCreator returns the plans a trainer owns.
func (r *planRepository) ListByCreator(ctx context.Context, trainerID int64) ([]domain.ExercisePlan, error) {
	return r.queryPlans(ctx,
		`SELECT id, trainer_id, name, exercises, created_at
		 FROM exercise_plans WHERE trainer_id = $1 ORDER BY created_at DESC`,
		trainerID)
}

// ListAll returns every plan; admin listing scope only.
func (r *planRepository) ListAll(ctx context.Context) ([]domain.ExercisePlan, error) {
	return r.queryPlans(ctx,
		`SELECT id, trainer_id, name, exercises, created_at
		 FROM exercise_plans ORDER BY created_at DESC`)
}

// DeleteByIDAndCreator removes the plan only when the creator matches and
// reports whether a row was deleted. Assigned-plan edges cascade.
func (r *planRepository) DeleteByIDAndCreator(ctx context.Context, id string, trainerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM exercise_plans WHERE id = $1 AND trainer_id = $2`,
		id, trainerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AssignToUser creates the plan-to-user edge. Re-assigning the same plan
// to the same user is a conflict.
func (r *planRepository) AssignToUser(ctx context.Context, planID string, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plan_assignments (plan_id, user_id) VALUES ($1, $2)`,
		planID, userID)
	return mapError(err)
}

func (r *planRepository) UnassignFromUser(ctx context.Context, planID string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_assignments WHERE plan_id = $1 AND user_id = $2`,
		planID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAssignedToUser returns every plan assigned to the user, regardless
// of which trainer assigned it.
func (r *planRepository) ListAssignedToUser(ctx context.Context, userID int64) ([]domain.ExercisePlan, error) {
	return r.queryPlans(ctx,
		`SELECT p.id, p.trainer_id, p.name, p.exercises, p.created_at
		 FROM exercise_plans p
		 JOIN plan_assignments pa ON pa.plan_id = p.id
		 WHERE pa.user_id = $1
		 ORDER BY pa.created_at DESC`,
		userID)
}

func (r *planRepository) queryPlans(ctx context.Context, query string, args ...any) ([]domain.ExercisePlan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.ExercisePlan{}
	for rows.Next() {
		var (
			p         domain.ExercisePlan
			exercises []byte
		)
		if err := rows.Scan(&p.ID, &p.TrainerID, &p.Name, &exercises, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exercises, &p.Exercises); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
