// internal/photos/local.go
package photos

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes photos under <dir>/<inspectionID>/<uuid><ext> and serves
// them from baseURL (mounted as a static file route by main).
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, inspectionID, filename string, r io.Reader, _ int64) (string, error) {
	name := uuid.NewString() + safeExt(filename)
	dir := filepath.Join(s.dir, inspectionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create inspection directory: %w", err)
	}
	dest := filepath.Join(dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return s.baseURL + "/" + inspectionID + "/" + name, nil
}

// safeExt keeps only a plain extension from the client-supplied filename.
func safeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic":
		return ext
	}
	return ".jpg"
}
