package coding

import "errors"

var (
	ErrInvalidInput = errors.New("invalid code input")
	ErrNotFound     = errors.New("submission not found")
	// ErrUpstream wraps runner and AI provider failures.
	ErrUpstream = errors.New("code service failed")
)
