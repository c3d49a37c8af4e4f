package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// profileRepository implements repository.ProfileRepository.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert replaces the owner's profile in place. Attributes are stored as
// an opaque JSON document; nothing here inspects them.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	attrs, err := json.Marshal(profile.Attributes)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (owner_id, attributes, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner_id) DO UPDATE SET attributes = $2, updated_at = $3`,
		profile.OwnerID, attrs, now)
	if err != nil {
		return err
	}
	profile.UpdatedAt = now
	return nil
}

func (r *profileRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Profile, error) {
	var (
		p     domain.Profile
		attrs []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, attributes, updated_at FROM profiles WHERE owner_id = $1`,
		ownerID,
	).Scan(&p.OwnerID, &attrs, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	return err
}
