package quiz

import "context"

// Repo stores generated quizzes and graded attempts.
type Repo interface {
	CreateSet(ctx context.Context, set Set) error
	GetSet(ctx context.Context, userID, quizID string) (Set, error)
	CreateAttempt(ctx context.Context, attempt Attempt) error
	SetAnalysis(ctx context.Context, userID, attemptID string, analysis map[string]any) error
	ListAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error)
}
