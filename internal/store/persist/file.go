package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FilePersister stores each key as a JSON file under a data directory.
// This is the default backend, the local counterpart of origin-scoped
// browser storage.
type FilePersister struct {
	dir string
}

func NewFilePersister(dir string) (*FilePersister, error) {
	if dir == "" {
		return nil, fmt.Errorf("file persister needs a data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FilePersister{dir: dir}, nil
}

func (p *FilePersister) Save(_ context.Context, key string, data []byte) error {
	path := p.path(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Debug("Persisted evaluation store", "key", key, "bytes", len(data))
	return nil
}

func (p *FilePersister) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(p.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path(key), err)
	}
	return data, nil
}

func (p *FilePersister) path(key string) string {
	return filepath.Join(p.dir, key+".json")
}
