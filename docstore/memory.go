package docstore

import (
	"context"
	"sync"

	"github.com/chapterhq/portal-server/internal/errors"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store used in tests and as a fallback when no
// database is configured.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.docs[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	// Copy to avoid external modification of the stored document
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.docs[key] = stored
	return nil
}
