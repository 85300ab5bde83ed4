package treasury

import (
	"context"
	"sort"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the Repo used in tests.
type InMemoryRepo struct {
	mu           sync.RWMutex
	transactions []Transaction
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Append(_ context.Context, transactions []Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, transactions...)
	return nil
}

func (r *InMemoryRepo) List(_ context.Context, limit int) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transaction, len(r.transactions))
	copy(out, r.transactions)
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
