package persist

import (
	"context"
	"sync"
)

// InMemPersister is a map-backed Persister for tests and throwaway runs.
type InMemPersister struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemPersister() *InMemPersister {
	return &InMemPersister{data: make(map[string][]byte)}
}

func (p *InMemPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	p.data[key] = cp
	return nil
}

func (p *InMemPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, ok := p.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
