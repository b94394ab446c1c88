package interview

import "context"

// Repo stores evaluated answers.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	List(ctx context.Context, userID string, limit int) ([]Record, error)
}
