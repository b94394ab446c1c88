package quiz

import "errors"

var (
	ErrInvalidTopic  = errors.New("topic is required")
	ErrInvalidSubmit = errors.New("invalid submission")
	ErrNotFound      = errors.New("quiz not found")
	// ErrUpstream wraps AI provider failures.
	ErrUpstream = errors.New("quiz generation failed")
)
