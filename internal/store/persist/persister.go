// Package persist provides durable string-keyed storage for serialized
// evaluation stores, with interchangeable backends.
package persist

import (
	"context"
	"fmt"
	"strings"
)

// KeyPrefix namespaces every stored evaluation payload. The full key format
// is stable for interoperability with prior exports.
const KeyPrefix = "eval_studio_data_"

// Key returns the durable storage key for a user identity.
func Key(user string) string {
	return KeyPrefix + strings.ToLower(user)
}

// Persister is a simple string-keyed get/set store. Load returns nil data
// with a nil error when the key is absent.
type Persister interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

type Type string

const (
	File  Type = "file"
	PG    Type = "pg"
	ES    Type = "es"
	InMem Type = "inmem"
)

type Config struct {
	Type Type
	// File backend
	Dir string
	// PG backend
	ConnStr string
	// ES backend
	Es *ESConfig
}

// New creates a Persister for the configured backend type.
func New(ctx context.Context, cfg Config) (Persister, error) {
	switch cfg.Type {
	case File:
		return NewFilePersister(cfg.Dir)

	case PG:
		return NewPGPersister(ctx, cfg.ConnStr)

	case ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("es persister config is missing")
		}
		return NewESPersister(ctx, *cfg.Es)

	case InMem:
		return NewInMemPersister(), nil

	default:
		return nil, fmt.Errorf("unsupported persister type: %q", cfg.Type)
	}
}
