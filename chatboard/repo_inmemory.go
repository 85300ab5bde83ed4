package chatboard

import (
	"context"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the Repo used in tests.
type InMemoryRepo struct {
	mu       sync.RWMutex
	messages map[string][]Message // channel -> messages, oldest first
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{messages: make(map[string][]Message)}
}

func (r *InMemoryRepo) Append(_ context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.Channel] = append(r.messages[m.Channel], m)
	return nil
}

func (r *InMemoryRepo) List(_ context.Context, channel string, limit int) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.messages[channel]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]Message, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
