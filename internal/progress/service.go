package progress

import (
	"context"
	"database/sql"
	"time"
)

type store interface {
	Get(ctx context.Context, userID string, now time.Time) (Progress, error)
	Apply(ctx context.Context, userID string, u Update, now time.Time) (Progress, error)
}

// AttemptSource lists a user's newest quiz attempts without importing the quiz package.
type AttemptSource interface {
	RecentAttempts(ctx context.Context, userID string, limit int) ([]AttemptSummary, error)
}

// Service manages progress data via an underlying store.
type Service struct {
	store    store
	attempts AttemptSource
	now      func() time.Time
}

// NewService constructs a Service with in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore(), now: utcNow}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(db *sql.DB) *Service {
	return &Service{store: NewPGStore(db), now: utcNow}
}

// SetAttemptSource wires the quiz history used by Recommendations.
func (s *Service) SetAttemptSource(src AttemptSource) {
	s.attempts = src
}

// Get returns the user's progress, creating defaults on first read.
func (s *Service) Get(ctx context.Context, userID string) (Progress, error) {
	return s.store.Get(ctx, userID, s.now())
}

// Record applies one XP-earning event.
func (s *Service) Record(ctx context.Context, userID string, u Update) (Progress, error) {
	if err := u.Validate(); err != nil {
		return Progress{}, err
	}
	return s.store.Apply(ctx, userID, u, s.now())
}

// Recommendations evaluates the rule set for the user.
func (s *Service) Recommendations(ctx context.Context, userID string) (Report, error) {
	now := s.now()
	p, err := s.store.Get(ctx, userID, now)
	if err != nil {
		return Report{}, err
	}
	var recent []AttemptSummary
	if s.attempts != nil {
		recent, err = s.attempts.RecentAttempts(ctx, userID, recentQuizWindow)
		if err != nil {
			return Report{}, err
		}
	}
	return Recommend(p, recent, now), nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
