package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
	"fittrack/fitness-api/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound  = fmt.Errorf("%w: photo", domain.ErrNotFound)
	ErrBadContentType = fmt.Errorf("%w: content type must be an image type", domain.ErrValidation)
)

// PhotoUpload is the response to an upload request: the stored metadata
// plus a presigned URL the client PUTs the file to.
type PhotoUpload struct {
	Photo     domain.ProgressPhoto `json:"photo"`
	UploadURL string               `json:"uploadUrl"`
}

// PhotoView is a photo plus a short-lived download URL.
type PhotoView struct {
	Photo       domain.ProgressPhoto `json:"photo"`
	DownloadURL string               `json:"downloadUrl"`
}

// MediaService manages progress photos. Files live in object storage;
// the service only hands out presigned URLs, it never proxies bytes.
type MediaService interface {
	RequestPhotoUpload(ctx context.Context, caller authz.Claim, fileName, contentType, takenAt string) (*PhotoUpload, error)
	ListPhotos(ctx context.Context, caller authz.Claim) ([]PhotoView, error)
	DeletePhoto(ctx context.Context, caller authz.Claim, photoID string) error
}

// mediaService implements the MediaService interface.
type mediaService struct {
	engine      *authz.Engine
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(engine *authz.Engine, photoRepo repository.PhotoRepository, fileStorage storage.FileStorage, logger *zap.Logger) MediaService {
	return &mediaService{
		engine:      engine,
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// RequestPhotoUpload records photo metadata and returns a presigned PUT
// URL. The client must upload with the same Content-Type it declared here.
func (s *mediaService) RequestPhotoUpload(ctx context.Context, caller authz.Claim, fileName, contentType, takenAt string) (*PhotoUpload, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpUploadPhoto, caller.UserID); err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if len(contentType) < 6 || contentType[:6] != "image/" {
		return nil, ErrBadContentType
	}
	if takenAt != "" {
		if err := validateDate(takenAt); err != nil {
			return nil, err
		}
	}

	photo := &domain.ProgressPhoto{
		ID:          uuid.NewString(),
		OwnerID:     caller.UserID,
		FileName:    fileName,
		ContentType: contentType,
		TakenAt:     takenAt,
	}
	photo.ObjectKey = fmt.Sprintf("photos/%d/%s", caller.UserID, photo.ID)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, photo.ObjectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: object storage", domain.ErrUnavailable)
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return &PhotoUpload{Photo: *photo, UploadURL: uploadURL}, nil
}

// ListPhotos returns the caller's photos with fresh download URLs.
func (s *mediaService) ListPhotos(ctx context.Context, caller authz.Claim) ([]PhotoView, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListPhotos, caller.UserID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			// One bad object should not hide the rest of the list.
			s.logger.Warn("failed to presign photo download",
				zap.String("photoId", p.ID), zap.Error(err))
			continue
		}
		views = append(views, PhotoView{Photo: p, DownloadURL: url})
	}
	return views, nil
}

// DeletePhoto removes the metadata row and the stored object.
func (s *mediaService) DeletePhoto(ctx context.Context, caller authz.Claim, photoID string) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeletePhoto, caller.UserID); err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByIDAndOwner(ctx, photoID, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if _, err := s.photoRepo.DeleteByIDAndOwner(ctx, photoID, caller.UserID); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, photo.ObjectKey); err != nil {
		s.logger.Warn("failed to delete photo object",
			zap.String("objectKey", photo.ObjectKey), zap.Error(err))
	}
	return nil
}
