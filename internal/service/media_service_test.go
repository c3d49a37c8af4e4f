package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

type fakePhotoRepo struct {
	photos map[string]*domain.ProgressPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[string]*domain.ProgressPhoto)}
}

func (r *fakePhotoRepo) Create(_ context.Context, photo *domain.ProgressPhoto) error {
	cp := *photo
	r.photos[cp.ID] = &cp
	return nil
}

func (r *fakePhotoRepo) GetByIDAndOwner(_ context.Context, id string, ownerID int64) (*domain.ProgressPhoto, error) {
	p, ok := r.photos[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.ProgressPhoto, error) {
	var out []domain.ProgressPhoto
	for _, p := range r.photos {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) DeleteByIDAndOwner(_ context.Context, id string, ownerID int64) (bool, error) {
	p, ok := r.photos[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(r.photos, id)
	return true, nil
}

func newMediaFixture() (*fakePhotoRepo, *fakeFileStorage, MediaService) {
	photos := newFakePhotoRepo()
	files := &fakeFileStorage{}
	engine := authz.NewEngine(newFakeAssignmentRepo(nil))
	return photos, files, NewMediaService(engine, photos, files, zap.NewNop())
}

func TestRequestPhotoUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("returns metadata and an upload url", func(t *testing.T) {
		photos, _, svc := newMediaFixture()
		upload, err := svc.RequestPhotoUpload(ctx, aliceClaim(), "front.jpg", "image/jpeg", "2026-08-30")
		require.NoError(t, err)
		assert.NotEmpty(t, upload.Photo.ID)
		assert.Equal(t, int64(3), upload.Photo.OwnerID)
		assert.True(t, strings.HasPrefix(upload.UploadURL, "https://storage.test/upload/photos/3/"))

		stored, err := photos.GetByIDAndOwner(ctx, upload.Photo.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, "front.jpg", stored.FileName)
	})

	t.Run("rejects a non-image content type", func(t *testing.T) {
		_, _, svc := newMediaFixture()
		_, err := svc.RequestPhotoUpload(ctx, aliceClaim(), "notes.pdf", "application/pdf", "")
		assert.ErrorIs(t, err, ErrBadContentType)
	})

	t.Run("rejects a bad takenAt date", func(t *testing.T) {
		_, _, svc := newMediaFixture()
		_, err := svc.RequestPhotoUpload(ctx, aliceClaim(), "front.jpg", "image/jpeg", "last week")
		assert.ErrorIs(t, err, ErrBadDate)
	})
}

func TestListPhotos(t *testing.T) {
	photos, _, svc := newMediaFixture()
	ctx := context.Background()

	require.NoError(t, photos.Create(ctx, &domain.ProgressPhoto{ID: "ph1", OwnerID: 3, ObjectKey: "photos/3/ph1"}))
	require.NoError(t, photos.Create(ctx, &domain.ProgressPhoto{ID: "ph2", OwnerID: 4, ObjectKey: "photos/4/ph2"}))

	views, err := svc.ListPhotos(ctx, aliceClaim())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ph1", views[0].Photo.ID)
	assert.Equal(t, "https://storage.test/download/photos/3/ph1", views[0].DownloadURL)
}

func TestDeletePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row and the object", func(t *testing.T) {
		photos, files, svc := newMediaFixture()
		require.NoError(t, photos.Create(ctx, &domain.ProgressPhoto{ID: "ph1", OwnerID: 3, ObjectKey: "photos/3/ph1"}))

		require.NoError(t, svc.DeletePhoto(ctx, aliceClaim(), "ph1"))
		assert.Equal(t, []string{"photos/3/ph1"}, files.deleted)
		_, err := photos.GetByIDAndOwner(ctx, "ph1", 3)
		assert.Error(t, err)
	})

	t.Run("someone else's photo reads as not found", func(t *testing.T) {
		photos, _, svc := newMediaFixture()
		require.NoError(t, photos.Create(ctx, &domain.ProgressPhoto{ID: "ph2", OwnerID: 4, ObjectKey: "photos/4/ph2"}))

		err := svc.DeletePhoto(ctx, aliceClaim(), "ph2")
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})
}
