package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tsvs/backend/internal/infrastructure/config"
)

// LocalStorage keeps objects on disk below Root. The HTTP layer serves Root under URLPrefix.
type LocalStorage struct {
	root      string
	urlPrefix string
	logger    *zap.Logger
}

// NewLocalStorage creates the root directory if needed
func NewLocalStorage(cfg config.LocalStorageConfig, logger *zap.Logger) (*LocalStorage, error) {
	if cfg.Root == "" {
		return nil, errors.New("storage root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	prefix := strings.TrimRight(cfg.URLPrefix, "/")
	if prefix == "" {
		prefix = "/static"
	}
	return &LocalStorage{root: root, urlPrefix: prefix, logger: logger}, nil
}

// Root returns the absolute directory holding the objects
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) path(key string) (string, string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	return key, filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Upload writes the object through a temporary file renamed into place
func (s *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, _ string) error {
	key, dst, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("failed to write object: wrote %d of %d bytes", written, size)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	s.logger.Debug("Stored object", zap.String("key", key), zap.Int64("size", written))
	return nil
}

// Delete removes the object file
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	_, p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether the object file is present
func (s *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	_, p, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return !info.IsDir(), nil
}

// URL returns the public path of the object with each segment escaped
func (s *LocalStorage) URL(_ context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.urlPrefix + "/" + strings.Join(segments, "/"), nil
}

var _ ObjectStorage = (*LocalStorage)(nil)
