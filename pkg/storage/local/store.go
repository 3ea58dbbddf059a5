package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/config"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
)

// ErrUnsupportedType signals an upload with a file extension outside the
// allowed image set.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge signals an upload exceeding the configured size limit.
var ErrTooLarge = errors.New("file too large")

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Store writes uploaded product images to a directory on local disk and
// hands back the public URL paths they are served from.
type Store struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewStore prepares the uploads directory and returns a store bound to it.
func NewStore(ctx context.Context, cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("uploads dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir %q: %w", cfg.Dir, err)
	}

	maxBytes := int64(cfg.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "dir", cfg.Dir), "uploads store initialized")
	}

	return &Store{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
		maxBytes:   maxBytes,
	}, nil
}

// Dir returns the on-disk directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists one multipart file under a random name and returns the
// public URL path.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", errors.New("file header is required")
	}
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, header.Size)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

// SaveAll persists every file and returns their public URL paths. Files
// already written are removed when a later one fails.
func (s *Store) SaveAll(headers []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(headers))
	for _, header := range headers {
		url, err := s.Save(header)
		if err != nil {
			s.RemoveAll(saved)
			return nil, err
		}
		saved = append(saved, url)
	}
	return saved, nil
}

// RemoveAll deletes the files behind the provided public URL paths. Missing
// files are ignored.
func (s *Store) RemoveAll(urls []string) {
	for _, u := range urls {
		name := path.Base(u)
		if name == "." || name == "/" {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}
