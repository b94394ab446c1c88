package coding

import "context"

// Repo stores evaluated submissions.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
	Get(ctx context.Context, userID, id string) (Submission, error)
	List(ctx context.Context, userID string, limit int) ([]Submission, error)
}
