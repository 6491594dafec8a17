package storage

import (
	"context"
	"io"
	"time"
)

// Backend abstracts where image objects live. The production backend is
// a Cloud Storage bucket; the filesystem backend serves local
// development where presigned URLs loop back to this server.
type Backend interface {
	// GeneratePresignedUploadURL returns a URL the client can PUT the
	// file to directly, valid for expiresIn.
	GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)

	// PublicURL returns the stable download URL for a stored object.
	// This is the URL persisted on item documents.
	PublicURL(key string) string

	// FileExists reports whether the object exists and its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile move object bytes through this process.
	// The filesystem backend uses them to serve its loopback presigned
	// URLs; the Cloud Storage backend supports them for completeness.
	SaveFile(ctx context.Context, key string, reader io.Reader) error
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)
}
