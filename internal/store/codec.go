package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Encode serializes the whole store for durable storage.
func (s Store) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation store: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored payload. Absent or corrupt data yields an
// empty store; prior evaluations are never a reason to crash.
func Decode(data []byte) Store {
	if len(data) == 0 {
		return New()
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("Stored evaluation data is unreadable, starting empty", "error", err)
		return New()
	}
	if s == nil {
		return New()
	}
	return s
}
