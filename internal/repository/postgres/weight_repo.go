package postgres

import (
	"context"
	"database/sql"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// weightRepository implements repository.WeightRepository.
type weightRepository struct {
	db *sql.DB
}

// NewWeightRepository creates a new weight entry repository.
func NewWeightRepository(db *sql.DB) repository.WeightRepository {
	return &weightRepository{db: db}
}

// UpsertByOwnerAndDate atomically replaces the (owner, date) row. Two
// concurrent upserts for the same key serialize on the unique constraint;
// the last write wins and no conflict reaches the caller.
func (r *weightRepository) UpsertByOwnerAndDate(ctx context.Context, entry *domain.WeightEntry) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weight_entries (owner_id, entry_date, value, goal, note, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (owner_id, entry_date)
		 DO UPDATE SET value = $3, goal = $4, note = $5, updated_at = $6`,
		entry.OwnerID, entry.Date, entry.Value, entry.Goal, entry.Note, now)
	if err != nil {
		return err
	}
	entry.UpdatedAt = now
	return nil
}

// ListByOwner returns the owner's weight entries, newest date first.
func (r *weightRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.WeightEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT owner_id, entry_date, value, goal, note, updated_at
		 FROM weight_entries WHERE owner_id = $1
		 ORDER BY entry_date DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.WeightEntry{}
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.OwnerID, &e.Date, &e.Value, &e.Goal, &e.Note, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
