// Package storage is the file storage collaborator: it accepts uploaded
// images and hands back a stable public URL. The rest of the app only ever
// stores and reads that URL string.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"textbook_backend/config"
)

const (
	maxUploadBytes = 5 * 1024 * 1024
	maxDimension   = 1000
	webpQuality    = 80
)

type FileStorage interface {
	// SaveImage stores the uploaded image under folder and returns its
	// public URL. Input is re-encoded to webp, downscaled to at most
	// 1000x1000.
	SaveImage(fileHeader *multipart.FileHeader, folder string) (string, error)
	// Remove deletes a previously stored file by its public URL.
	Remove(url string) error
}

type localStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(cfg *config.Config) (FileStorage, error) {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", cfg.Upload.Dir, err)
	}
	return &localStorage{dir: cfg.Upload.Dir, baseURL: strings.TrimSuffix(cfg.Upload.BaseURL, "/")}, nil
}

func (s *localStorage) SaveImage(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader.Size > maxUploadBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", maxUploadBytes)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	img, err := decodeImage(buf.Bytes(), fileHeader.Filename)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("failed to encode webp: %w", err)
	}

	name := uuid.New().String() + ".webp"
	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, folder, name), out.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}

func (s *localStorage) Remove(url string) error {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		return fmt.Errorf("not a managed upload URL: %s", url)
	}
	rel := url[idx+len("/uploads/"):]
	// Reject anything that escapes the upload dir.
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid upload path: %s", rel)
	}
	return os.Remove(filepath.Join(s.dir, rel))
}

func decodeImage(data []byte, filename string) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(data))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(data))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(data))
	}

	// Content sniffing failed, fall back to the extension.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case ".png":
		return png.Decode(bytes.NewReader(data))
	case ".webp":
		return webp.Decode(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unsupported image format: %s", ct)
}
