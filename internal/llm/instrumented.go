package llm

import (
	"context"
	"time"

	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/telemetry"
)

// Instrumented logs and meters every call of the wrapped client.
type Instrumented struct {
	Next Client
	// MaxTokens caps every request when positive.
	MaxTokens int
}

// Complete forwards to the wrapped client.
func (i Instrumented) Complete(ctx context.Context, req Request) (string, error) {
	if i.MaxTokens > 0 && (req.MaxTokens <= 0 || req.MaxTokens > i.MaxTokens) {
		req.MaxTokens = i.MaxTokens
	}
	start := time.Now()
	out, err := i.Next.Complete(ctx, req)
	elapsed := time.Since(start)

	fields := map[string]any{
		"provider":    i.Next.Provider(),
		"operation":   req.Operation,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		metrics.ObserveLLMCall(i.Next.Provider(), req.Operation, "error", elapsed)
		fields["error"] = err.Error()
		fields["rate_limited"] = IsRateLimited(err)
		telemetry.Error("llm.call_failed", fields)
		return "", err
	}
	metrics.ObserveLLMCall(i.Next.Provider(), req.Operation, "ok", elapsed)
	fields["response_chars"] = len(out)
	telemetry.Info("llm.call", fields)
	return out, nil
}

// Provider returns the wrapped provider name.
func (i Instrumented) Provider() string { return i.Next.Provider() }
