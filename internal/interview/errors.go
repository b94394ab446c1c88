package interview

import "errors"

var (
	ErrInvalidInput = errors.New("invalid interview input")
	// ErrUpstream wraps AI provider failures.
	ErrUpstream = errors.New("interview evaluation failed")
)
