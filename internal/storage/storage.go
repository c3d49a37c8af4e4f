package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long a handed-out URL stays usable.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. The
// service never proxies file bytes; clients talk to storage directly via
// short-lived presigned URLs.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL allowing a PUT
	// of one object. The uploader must send the given content type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL allowing a GET
	// of one object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
