package llm

import (
	"context"

	"elevate-backend/internal/normalize"
	"elevate-backend/internal/shared/metrics"
)

// CompleteArray runs req and coerces the reply into an array.
// Provider failures are returned as is; malformed text yields an empty array.
func CompleteArray(ctx context.Context, c Client, req Request) ([]any, error) {
	text, err := c.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	res := normalize.Extract(text)
	out := normalize.Coerce(res, normalize.ShapeArray).([]any)
	outcome := string(res.Source())
	if len(out) == 0 {
		outcome = "empty"
	}
	metrics.IncNormalize(string(normalize.ShapeArray), outcome)
	return out, nil
}

// CompleteObject runs req and coerces the reply into an object, falling back
// to {"raw": text} when no object can be recovered.
func CompleteObject(ctx context.Context, c Client, req Request) (map[string]any, error) {
	text, err := c.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	res := normalize.Extract(text)
	out := normalize.Coerce(res, normalize.ShapeObject).(map[string]any)
	outcome := string(res.Source())
	if normalize.IsFallback(out) {
		outcome = "fallback"
	}
	metrics.IncNormalize(string(normalize.ShapeObject), outcome)
	return out, nil
}
