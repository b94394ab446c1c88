package progress

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string]Progress
	events []Event
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Progress)}
}

func (s *memoryStore) Get(ctx context.Context, userID string, now time.Time) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(userID, now), nil
}

func (s *memoryStore) Apply(ctx context.Context, userID string, u Update, now time.Time) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Apply(s.ensure(userID, now), u, now)
	s.data[userID] = p
	s.events = append(s.events, Event{
		UserID:    userID,
		Action:    u.Action,
		XPEarned:  u.XPEarned,
		Details:   u.Details,
		CreatedAt: now,
	})
	return cloneProgress(p), nil
}

func (s *memoryStore) ensure(userID string, now time.Time) Progress {
	p, ok := s.data[userID]
	if !ok {
		p = defaultProgress(userID, now)
		s.data[userID] = p
	}
	return cloneProgress(p)
}

func cloneProgress(p Progress) Progress {
	p.Badges = append([]string{}, p.Badges...)
	return p
}
