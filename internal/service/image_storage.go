package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentify-backend/internal/logger"
	"rentify-backend/internal/storage"
)

const uploadURLExpiry = 15 * time.Minute

// allowedImageTypes maps accepted upload MIME types to the object key
// extension they are stored under.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type imageStorageService struct {
	backend storage.Backend
}

func NewImageStorageService(backend storage.Backend) ImageStorageService {
	return &imageStorageService{backend: backend}
}

func (s *imageStorageService) GetUploadURL(ctx context.Context, userID, filename, contentType string) (string, string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", "", fmt.Errorf("unsupported image type %q", contentType)
	}

	// Keys are random, never derived from the client filename, so two
	// uploads can never collide or overwrite each other.
	key := path.Join("images", uuid.NewString()+ext)

	uploadURL, err := s.backend.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return "", "", err
	}
	logger.Info("Issued image upload URL", "user_id", userID, "key", key, "filename", filename)
	return uploadURL, s.backend.PublicURL(key), nil
}
