package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"elevate-backend/internal/normalize"
)

// Policy decides what a failed evaluation does to the rest of a batch.
type Policy string

const (
	// PolicyContinue records the failure on the item and keeps going.
	PolicyContinue Policy = "continue"
	// PolicyFailFast aborts the batch and discards collected results.
	PolicyFailFast Policy = "fail_fast"
)

// ParsePolicy maps a config value to a Policy, defaulting to PolicyContinue.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail_fast", "fail-fast", "failfast":
		return PolicyFailFast
	default:
		return PolicyContinue
	}
}

// Take is the recorded answer to one question.
type Take struct {
	Transcript string
	Elapsed    time.Duration
}

// EvalInput is what the evaluator receives for one answer.
type EvalInput struct {
	Question   string
	Transcript string
	Metrics    Metrics
}

// Evaluator produces a raw evaluation for one answer.
type Evaluator interface {
	Evaluate(ctx context.Context, in EvalInput) (string, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, in EvalInput) (string, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, in EvalInput) (string, error) {
	return f(ctx, in)
}

// QuestionResult is one evaluated answer. Error is set instead of
// Evaluation when the item failed under PolicyContinue.
type QuestionResult struct {
	Index      int            `json:"index"`
	Question   string         `json:"question"`
	Transcript string         `json:"transcript"`
	Metrics    Metrics        `json:"metrics"`
	Evaluation map[string]any `json:"evaluation,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// OK reports whether the item was evaluated.
func (r QuestionResult) OK() bool { return r.Error == "" }

// ItemError is the batch failure returned under PolicyFailFast.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("evaluate question %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Aggregator evaluates a batch of answers one at a time.
type Aggregator struct {
	Evaluator Evaluator
	Policy    Policy
}

// Aggregate evaluates every question with a non-empty transcript in ascending
// index order. Each call completes before the next starts.
func (a *Aggregator) Aggregate(ctx context.Context, questions []string, takes map[int]Take) ([]QuestionResult, error) {
	results := make([]QuestionResult, 0, len(takes))
	for i, question := range questions {
		take, ok := takes[i]
		if !ok || strings.TrimSpace(take.Transcript) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := QuestionResult{
			Index:      i,
			Question:   question,
			Transcript: take.Transcript,
			Metrics:    MetricsFor(take.Transcript, take.Elapsed),
		}
		raw, err := a.Evaluator.Evaluate(ctx, EvalInput{
			Question:   question,
			Transcript: take.Transcript,
			Metrics:    item.Metrics,
		})
		if err != nil {
			if a.Policy == PolicyFailFast {
				return nil, &ItemError{Index: i, Err: err}
			}
			item.Error = err.Error()
			results = append(results, item)
			continue
		}
		item.Evaluation = normalize.Object(raw)
		results = append(results, item)
	}
	return results, nil
}
