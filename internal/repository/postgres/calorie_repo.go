package postgres

import (
	"context"
	"database/sql"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// calorieRepository implements repository.CalorieRepository.
type calorieRepository struct {
	db *sql.DB
}

// NewCalorieRepository creates a new calorie entry repository.
func NewCalorieRepository(db *sql.DB) repository.CalorieRepository {
	return &calorieRepository{db: db}
}

// Create inserts a meal entry and returns its sequential id.
func (r *calorieRepository) Create(ctx context.Context, entry *domain.CalorieEntry) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO calorie_entries (owner_id, entry_date, meal, food, calories, protein, carbs, fat, target, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		entry.OwnerID, entry.Date, entry.Meal, entry.Food,
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Target, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	entry.ID = id
	entry.CreatedAt = now
	return id, nil
}

// ListByOwner returns the owner's meal entries, newest date first.
func (r *calorieRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CalorieEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, entry_date, meal, food, calories, protein, carbs, fat, target, created_at
		 FROM calorie_entries WHERE owner_id = $1
		 ORDER BY entry_date DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.CalorieEntry{}
	for rows.Next() {
		var e domain.CalorieEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Date, &e.Meal, &e.Food,
			&e.Calories, &e.Protein, &e.Carbs, &e.Fat, &e.Target, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *calorieRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM calorie_entries WHERE id = $1 AND owner_id = $2`,
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
