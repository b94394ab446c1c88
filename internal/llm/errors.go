package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is a failed provider round trip.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrEmptyResponse means the provider answered without any text.
var ErrEmptyResponse = errors.New("empty response")

// IsRateLimited reports whether err is a provider 429.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests
}
