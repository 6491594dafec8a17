package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSBackend stores objects in a Cloud Storage bucket and signs V4
// upload URLs with the service-account credentials the client was
// built with.
type GCSBackend struct {
	client *gcs.Client
	bucket string
}

func NewGCSBackend(client *gcs.Client, bucket string) *GCSBackend {
	return &GCSBackend{client: client, bucket: bucket}
}

func (b *GCSBackend) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	opts := &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(expiresIn),
		ContentType: contentType,
	}
	signed, err := b.client.Bucket(b.bucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("sign upload url for %s: %w", key, err)
	}
	return signed, nil
}

func (b *GCSBackend) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, url.PathEscape(key))
}

func (b *GCSBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := b.client.Bucket(b.bucket).Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("stat %s: %w", key, err)
	}
	return true, attrs.Size, nil
}

func (b *GCSBackend) DeleteFile(ctx context.Context, key string) error {
	err := b.client.Bucket(b.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (b *GCSBackend) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, reader); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (b *GCSBackend) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := b.client.Bucket(b.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return r, nil
}
