package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"job-connect/internal/config"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a key has metadata in the database but no
// blob in the backend.
var ErrNotFound = errors.New("file not found in storage")

// Store persists uploaded resume blobs. Keys are opaque paths assigned by
// NewKey.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.UploadDir)
	case config.StorageDriverS3:
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// NewKey builds a collision-free storage key keeping the original extension
// so downloads carry a sensible filename.
func NewKey(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
}
