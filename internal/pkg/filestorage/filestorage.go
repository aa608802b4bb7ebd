package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// Accepted image extensions
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MaxFileSize limits uploads to 10 MB
const MaxFileSize = 10 << 20

// Storage persists uploaded files on the local filesystem under a base
// directory, assigning random names so originals can never collide.
type Storage struct {
	basePath string
}

// NewStorage creates the base directory if needed and returns a Storage
func NewStorage(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Save writes an uploaded file to disk and returns its relative URL path
func (s *Storage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxFileSize {
		return "", apperrors.NewBadRequestError("file exceeds the 10MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewBadRequestError("unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dstPath := filepath.Join(s.basePath, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Delete removes a previously saved file by its URL path. Missing files are
// logged and ignored, the metadata row is the source of truth.
func (s *Storage) Delete(urlPath string) {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.basePath, name)); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("file", name).Msg("Failed to delete stored file")
	}
}

// BasePath returns the directory files are stored in
func (s *Storage) BasePath() string {
	return s.basePath
}
