package postgres

import (
	"context"
	"database/sql"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// assignmentRepository implements repository.AssignmentRepository.
type assignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new assignment graph repository.
func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Add inserts a trainer-to-user edge. The pair is unique; re-adding an
// existing edge surfaces ErrConflict.
func (r *assignmentRepository) Add(ctx context.Context, trainerID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (trainer_id, user_id) VALUES ($1, $2)`,
		trainerID, userID)
	return mapError(err)
}

// Remove deletes the edge and reports whether one was present.
func (r *assignmentRepository) Remove(ctx context.Context, trainerID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE trainer_id = $1 AND user_id = $2`,
		trainerID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListUsersFor returns the accounts currently assigned to the trainer.
func (r *assignmentRepository) ListUsersFor(ctx context.Context, trainerID int64) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.username, a.password_hash, a.role, a.created_at, a.updated_at
		 FROM accounts a
		 JOIN assignments s ON s.user_id = a.id
		 WHERE s.trainer_id = $1
		 ORDER BY a.id`,
		trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, a)
	}
	return users, rows.Err()
}

// IsAssigned answers the membership query the authorization engine needs.
func (r *assignmentRepository) IsAssigned(ctx context.Context, trainerID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE trainer_id = $1 AND user_id = $2)`,
		trainerID, userID,
	).Scan(&exists)
	return exists, err
}
