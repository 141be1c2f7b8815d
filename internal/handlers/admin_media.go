// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder

	"bonik/internal/imaging"
	"bonik/internal/storage"
)

const (
	// maxUploadSize is the maximum allowed file upload size (20 MB).
	maxUploadSize = 20 << 20

	// maxImagePixels caps decoded image size to prevent memory bombs.
	maxImagePixels = 100_000_000
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// variantTypes are image types that get resized variants. GIF is
// excluded to preserve animation.
var variantTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AdminMedia handles product and banner image uploads to S3-compatible
// storage. Each upload stores the original plus resized JPEG variants
// for the storefront.
type AdminMedia struct {
	storage *storage.Client
}

// NewAdminMedia creates a new AdminMedia handler. client may be nil
// when object storage is not configured; uploads then return 503.
func NewAdminMedia(client *storage.Client) *AdminMedia {
	return &AdminMedia{storage: client}
}

// Upload accepts a multipart image upload, stores the original under a
// uuid-based key, and generates resized variants alongside it.
func (h *AdminMedia) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 20 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 20 MB.")
		return
	}

	// Sniff the actual content type; the client's header is not trusted.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	if !allowedMediaTypes[contentType] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to process file")
		return
	}
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	if variantTypes[contentType] {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(fileBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "File is not a valid image")
			return
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
			respondError(w, http.StatusBadRequest, "Image dimensions are too large")
			return
		}
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if err := h.storage.Upload(ctx, key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	// Variants are best-effort; the original already made it up.
	variantURLs := map[string]string{}
	if variantTypes[contentType] {
		processed, err := imaging.GenerateVariants(fileBytes, imaging.DefaultVariants)
		if err != nil {
			slog.Warn("variant generation failed", "error", err, "key", key)
		}
		for _, p := range processed {
			vk := fmt.Sprintf("media/%d/%02d/%s_%s.jpg", now.Year(), now.Month(), fileID, p.Name)
			if err := h.storage.Upload(ctx, vk, p.ContentType, bytes.NewReader(p.Data), int64(len(p.Data))); err != nil {
				slog.Warn("variant upload failed", "error", err, "key", vk)
				continue
			}
			variantURLs[p.Name] = h.storage.FileURL(vk)
		}
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"url":      h.storage.FileURL(key),
		"variants": variantURLs,
		"filename": header.Filename,
		"size":     len(fileBytes),
		"type":     contentType,
	})
}

// Delete removes an uploaded file and its variants, addressed by the
// public URL the upload returned. Missing objects are not an error.
func (h *AdminMedia) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	key, ok := h.storage.ExtractKey(req.URL)
	if !ok {
		respondError(w, http.StatusBadRequest, "URL is not in this shop's storage")
		return
	}

	ctx := r.Context()
	if err := h.storage.Delete(ctx, key); err != nil {
		slog.Error("s3 delete failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	// Variant keys derive from the original: <base>_<name>.jpg.
	base := strings.TrimSuffix(key, filepath.Ext(key))
	for _, v := range imaging.DefaultVariants {
		vk := fmt.Sprintf("%s_%s.jpg", base, v.Name)
		if err := h.storage.Delete(ctx, vk); err != nil {
			slog.Warn("variant delete failed", "error", err, "key", vk)
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
