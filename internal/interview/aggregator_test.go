package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/normalize"
)

type recordingEvaluator struct {
	calls  []EvalInput
	failAt map[string]error
}

func (r *recordingEvaluator) Evaluate(_ context.Context, in EvalInput) (string, error) {
	r.calls = append(r.calls, in)
	if err := r.failAt[in.Question]; err != nil {
		return "", err
	}
	return "```json\n{\"clarity_score\": 7, \"feedback\": \"ok for " + in.Question + "\"}\n```", nil
}

func TestAggregateSkipsEmptyTranscripts(t *testing.T) {
	ev := &recordingEvaluator{}
	agg := Aggregator{Evaluator: ev}

	results, err := agg.Aggregate(context.Background(),
		[]string{"Q1", "Q2", "Q3"},
		map[int]Take{0: {Transcript: "answer one"}, 1: {Transcript: "   "}, 2: {Transcript: "answer three"}},
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Q1", results[0].Question)
	assert.Equal(t, "Q3", results[1].Question)
	assert.Equal(t, 2, results[1].Index)
	assert.Equal(t, "ok for Q3", results[1].Evaluation["feedback"])
	require.Len(t, ev.calls, 2)
}

func TestAggregateComputesMetricsPerQuestion(t *testing.T) {
	ev := &recordingEvaluator{}
	agg := Aggregator{Evaluator: ev}
	_, err := agg.Aggregate(context.Background(),
		[]string{"Q1", "Q2"},
		map[int]Take{0: {Transcript: "um um um"}, 1: {Transcript: "clear answer"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, ev.calls[0].Metrics.Fillers.Total)
	assert.Equal(t, 0, ev.calls[1].Metrics.Fillers.Total)
}

func TestAggregateContinuePolicyRecordsItemError(t *testing.T) {
	ev := &recordingEvaluator{failAt: map[string]error{"Q2": errors.New("quota")}}
	agg := Aggregator{Evaluator: ev, Policy: PolicyContinue}

	results, err := agg.Aggregate(context.Background(),
		[]string{"Q1", "Q2", "Q3"},
		map[int]Take{0: {Transcript: "a"}, 1: {Transcript: "b"}, 2: {Transcript: "c"}},
	)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Equal(t, "quota", results[1].Error)
	assert.True(t, results[2].OK())
}

func TestAggregateFailFastDiscardsResults(t *testing.T) {
	ev := &recordingEvaluator{failAt: map[string]error{"Q2": errors.New("quota")}}
	agg := Aggregator{Evaluator: ev, Policy: PolicyFailFast}

	results, err := agg.Aggregate(context.Background(),
		[]string{"Q1", "Q2", "Q3"},
		map[int]Take{0: {Transcript: "a"}, 1: {Transcript: "b"}, 2: {Transcript: "c"}},
	)
	assert.Nil(t, results)
	var item *ItemError
	require.ErrorAs(t, err, &item)
	assert.Equal(t, 1, item.Index)
	assert.Len(t, ev.calls, 2, "no call is made after the failure")
}

func TestAggregateFallbackEvaluation(t *testing.T) {
	agg := Aggregator{Evaluator: EvaluatorFunc(func(context.Context, EvalInput) (string, error) {
		return "Sorry, I cannot evaluate this.", nil
	})}
	results, err := agg.Aggregate(context.Background(), []string{"Q"}, map[int]Take{0: {Transcript: "x"}})
	require.NoError(t, err)
	assert.Equal(t, normalize.Fallback("Sorry, I cannot evaluate this."), results[0].Evaluation)
}

func TestAggregateStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	agg := Aggregator{Evaluator: &recordingEvaluator{}}
	_, err := agg.Aggregate(ctx, []string{"Q"}, map[int]Take{0: {Transcript: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyFailFast, ParsePolicy("fail-fast"))
	assert.Equal(t, PolicyContinue, ParsePolicy(""))
	assert.Equal(t, PolicyContinue, ParsePolicy("whatever"))
}

func TestEvaluationView(t *testing.T) {
	ev, ok := EvaluationView(map[string]any{
		"clarity_score":    "8/10",
		"confidence_score": float64(6),
		"improvements":     []any{"slow down", 3},
		"sample_answer":    "I led...",
	})
	require.True(t, ok)
	assert.Equal(t, 8.0, *ev.ClarityScore)
	assert.Equal(t, 6.0, *ev.ConfidenceScore)
	assert.Nil(t, ev.ProfessionalismScore)
	assert.Equal(t, []string{"slow down"}, ev.Improvements)

	_, ok = EvaluationView(normalize.Fallback("text"))
	assert.False(t, ok)
}
