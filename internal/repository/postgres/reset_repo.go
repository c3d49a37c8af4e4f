package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fittrack/fitness-api/internal/repository"
)

// resetRepository implements repository.DataResetRepository.
type resetRepository struct {
	db *sql.DB
}

// NewDataResetRepository creates a repository for the full data reset.
func NewDataResetRepository(db *sql.DB) repository.DataResetRepository {
	return &resetRepository{db: db}
}

// ResetOwnerData wipes every resource the owner has recorded in one
// transaction: all rows go or none do. The account itself and any plan
// or trainer assignments pointing at the owner are left untouched.
func (r *resetRepository) ResetOwnerData(ctx context.Context, ownerID int64) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	// Collect photo object keys first so storage can be cleaned up after
	// the transaction commits.
	rows, err := tx.QueryContext(ctx,
		`SELECT object_key FROM progress_photos WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	objectKeys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		objectKeys = append(objectKeys, key)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	deletes := []string{
		`DELETE FROM profiles WHERE owner_id = $1`,
		`DELETE FROM workouts WHERE owner_id = $1`,
		`DELETE FROM weight_entries WHERE owner_id = $1`,
		`DELETE FROM calorie_entries WHERE owner_id = $1`,
		`DELETE FROM progress_photos WHERE owner_id = $1`,
	}
	for _, q := range deletes {
		if _, err := tx.ExecContext(ctx, q, ownerID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reset: %w", err)
	}
	return objectKeys, nil
}
