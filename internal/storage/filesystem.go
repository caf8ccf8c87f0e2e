package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScratchNamespace is the key prefix for assets that have no real bytes yet:
// placeholder audio, video, and thumbnail locations awaiting manual upload.
const ScratchNamespace = "temp"

// FileStore persists generated assets onto the local filesystem. It stands in
// for an object storage service in development and test environments; keys
// double as the public asset references stored on artifacts.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Write persists the provided bytes at the given relative key and returns the
// canonicalized storage key. Keys are cleaned to prevent directory traversal.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return cleanKey, nil
}

// Read loads the bytes stored at the given key. Missing keys are reported as
// os.ErrNotExist wrapped errors.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(cleanKey)))
	if err != nil {
		return nil, fmt.Errorf("storage: read file: %w", err)
	}
	return data, nil
}

// DirStats reports file count and total size under a key prefix. A prefix
// that does not exist yet counts as empty rather than erroring.
func (s *FileStore) DirStats(ctx context.Context, prefix string) (int, int64, error) {
	if s == nil {
		return 0, 0, errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	cleanPrefix, err := sanitizeKey(prefix)
	if err != nil {
		return 0, 0, err
	}
	root := filepath.Join(s.basePath, filepath.FromSlash(cleanPrefix))
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return 0, 0, nil
	}

	var count int
	var total int64
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		count++
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("storage: walk %s: %w", cleanPrefix, err)
	}
	return count, total, nil
}

// ScratchKey canonicalizes a filename into the scratch namespace without
// touching the filesystem. Placeholder stages use it to hand out asset
// locations that a later manual upload will fill in.
func ScratchKey(filename string) string {
	cleaned, err := sanitizeKey(ScratchNamespace + "/" + filename)
	if err != nil {
		return ScratchNamespace + "/" + filename
	}
	return cleaned
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
