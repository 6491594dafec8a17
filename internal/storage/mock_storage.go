package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FSBackend stores objects on the local filesystem and hands out
// presigned URLs that loop back to this server's upload and download
// endpoints. It exists for development without a Cloud Storage bucket.
type FSBackend struct {
	baseURL    string
	uploadsDir string
}

func NewFSBackend(baseURL, uploadsDir string) (*FSBackend, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &FSBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

func (b *FSBackend) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	// No signature: the loopback upload endpoint trusts its callers.
	// The key rides along as a query parameter so the handler knows
	// where to store the body.
	return fmt.Sprintf("%s/api/v1/images/upload?key=%s", b.baseURL, url.QueryEscape(key)), nil
}

func (b *FSBackend) PublicURL(key string) string {
	return fmt.Sprintf("%s/api/v1/images/download?key=%s", b.baseURL, url.QueryEscape(key))
}

func (b *FSBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := b.localPath(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (b *FSBackend) DeleteFile(ctx context.Context, key string) error {
	path, err := b.localPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (b *FSBackend) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	path, err := b.localPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories for %s: %w", key, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	defer file.Close()
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (b *FSBackend) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := b.localPath(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return file, nil
}

// localPath resolves a key under the uploads directory and rejects keys
// that would escape it.
func (b *FSBackend) localPath(key string) (string, error) {
	path := filepath.Join(b.uploadsDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(b.uploadsDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return path, nil
}
