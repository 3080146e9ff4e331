// Package storage provides object storage for uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/tsvs/backend/internal/infrastructure/config"
)

// ErrInvalidKey is returned for empty keys and keys escaping the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStorage stores files under slash-separated keys such as "licenses/<id>/scan.pdf"
type ObjectStorage interface {
	// Upload writes size bytes from body under key, replacing any existing object
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns a link clients can download the object from
	URL(ctx context.Context, key string) (string, error)
}

// New creates the backend selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStorage(cfg.Local, logger)
	case "s3":
		s, err := NewS3ObjectStorage(&cfg.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// cleanKey normalizes a key and rejects traversal outside the root
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
