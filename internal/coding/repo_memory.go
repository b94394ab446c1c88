package coding

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu          sync.RWMutex
	submissions map[string]Submission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{submissions: make(map[string]Submission)}
}

func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[sub.ID] = sub
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.submissions[id]
	if !ok || sub.UserID != userID {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, limit int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Submission
	for _, sub := range r.submissions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
