package postgres

import (
	"context"
	"database/sql"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// photoRepository implements repository.PhotoRepository.
type photoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new progress photo metadata repository.
func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_photos (id, owner_id, object_key, file_name, content_type, taken_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		photo.ID, photo.OwnerID, photo.ObjectKey, photo.FileName, photo.ContentType, photo.TakenAt, now)
	if err != nil {
		return mapError(err)
	}
	photo.CreatedAt = now
	return nil
}

func (r *photoRepository) GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*domain.ProgressPhoto, error) {
	var p domain.ProgressPhoto
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, object_key, file_name, content_type, taken_at, created_at
		 FROM progress_photos WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.ObjectKey, &p.FileName, &p.ContentType, &p.TakenAt, &p.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *photoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ProgressPhoto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, object_key, file_name, content_type, taken_at, created_at
		 FROM progress_photos WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []domain.ProgressPhoto{}
	for rows.Next() {
		var p domain.ProgressPhoto
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.ObjectKey, &p.FileName, &p.ContentType, &p.TakenAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photoRepository) DeleteByIDAndOwner(ctx context.Context, id string, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM progress_photos WHERE id = $1 AND owner_id = $2`,
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
