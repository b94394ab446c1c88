package quiz

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	sets     map[string]Set
	attempts map[string][]Attempt
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sets:     make(map[string]Set),
		attempts: make(map[string][]Attempt),
	}
}

func (r *MemoryRepo) CreateSet(ctx context.Context, set Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
	return nil
}

func (r *MemoryRepo) GetSet(ctx context.Context, userID, quizID string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[quizID]
	if !ok || set.UserID != userID {
		return Set{}, ErrNotFound
	}
	return set, nil
}

func (r *MemoryRepo) CreateAttempt(ctx context.Context, attempt Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[attempt.UserID] = append(r.attempts[attempt.UserID], attempt)
	return nil
}

func (r *MemoryRepo) SetAnalysis(ctx context.Context, userID, attemptID string, analysis map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.attempts[userID]
	for i := range list {
		if list[i].ID == attemptID {
			list[i].Analysis = analysis
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) ListAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := append([]Attempt(nil), r.attempts[userID]...)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
