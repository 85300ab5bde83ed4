package forms

import (
	"context"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the Repo used in tests.
type InMemoryRepo struct {
	mu          sync.RWMutex
	submissions map[string][]Submission // form -> submissions, oldest first
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{submissions: make(map[string][]Submission)}
}

func (r *InMemoryRepo) Append(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[s.Form] = append(r.submissions[s.Form], s)
	return nil
}

func (r *InMemoryRepo) List(_ context.Context, form string, limit int) ([]Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.submissions[form]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	// newest first, matching the SQL repo
	out := make([]Submission, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
