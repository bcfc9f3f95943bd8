// Package storage manages vacation image attachments on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxImageSize is the upload cap, large enough for 4K photos
const MaxImageSize = 20 * 1024 * 1024

// Errors reported before anything is written
var (
	ErrInvalidType = errors.New("invalid file type, only JPEG, PNG, and WEBP images are allowed")
	ErrTooLarge    = errors.New("file size too large, maximum size is 20MB")
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageStore stores uploaded images under a single directory with
// collision-free names.
type ImageStore struct {
	dir string
}

// NewImageStore creates the uploads directory if needed
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save validates and writes an uploaded image, returning the stored file
// name. Type and size are checked before any bytes hit disk.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if !allowedMimeTypes[strings.ToLower(file.Header.Get("Content-Type"))] {
		return "", ErrInvalidType
	}
	if file.Size > MaxImageSize {
		return "", ErrTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Timestamp prefix keeps concurrent uploads of the same name apart
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(name string) {
	if name == "" {
		return
	}
	path, ok := s.resolve(name)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("file", name).Warn("Failed to remove image file")
	}
}

// Path returns the on-disk path for a stored image, reporting whether the
// file exists. Traversal outside the uploads directory is rejected.
func (s *ImageStore) Path(name string) (string, bool) {
	path, ok := s.resolve(name)
	if !ok {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (s *ImageStore) resolve(name string) (string, bool) {
	clean := filepath.Base(filepath.Clean(name))
	if clean == "" || clean == "." || clean == ".." {
		return "", false
	}
	return filepath.Join(s.dir, clean), true
}
