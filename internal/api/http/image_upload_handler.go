package http

import (
	"io"
	"net/http"
	"path"

	"rentify-backend/internal/service"
	"rentify-backend/internal/storage"
)

// ImageHandler issues presigned upload URLs and, when the filesystem
// backend is active, serves the loopback upload and download endpoints
// those URLs point at.
type ImageHandler struct {
	imageSvc service.ImageStorageService
	backend  storage.Backend
}

func NewImageHandler(imageSvc service.ImageStorageService, backend storage.Backend) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc, backend: backend}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *ImageHandler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	uploadURL, publicURL, err := h.imageSvc.GetUploadURL(r.Context(), UserID(r.Context()), req.Filename, req.ContentType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"upload_url": uploadURL,
		"image_url":  publicURL,
	})
}

// HandleUpload accepts PUT bodies for filesystem-backend presigned URLs.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	if err := h.backend.SaveFile(r.Context(), key, r.Body); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save file")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ImageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	file, err := h.backend.ReadFile(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.Copy(w, file)
}
