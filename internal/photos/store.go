// internal/photos/store.go
package photos

import (
	"context"
	"fmt"
	"io"

	"propcheck/internal/config"
)

// Store persists uploaded inspection photos and hands back an opaque URL.
// The rest of the app never interprets the URL beyond echoing it to clients.
type Store interface {
	Put(ctx context.Context, inspectionID, filename string, r io.Reader, size int64) (string, error)
}

// NewFromConfig creates a Store implementation based on the photos config.
func NewFromConfig(cfg config.Config) (Store, error) {
	switch cfg.Photos.Backend {
	case "", "local":
		if cfg.Photos.Dir == "" {
			return nil, fmt.Errorf("local photo store requires photos.dir to be set")
		}
		return NewLocalStore(cfg.Photos.Dir, cfg.Photos.BaseURL)
	case "s3":
		if cfg.Photos.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 photo store requires photos.s3.bucket to be set")
		}
		return NewS3Store(cfg.Photos.S3.Bucket, cfg.Photos.S3.Region, cfg.Photos.S3.Prefix,
			cfg.Photos.S3.AccessKey, cfg.Photos.S3.SecretKey)
	default:
		return nil, fmt.Errorf("unknown photo backend: %s", cfg.Photos.Backend)
	}
}
