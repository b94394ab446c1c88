package coding

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/progress"
	"elevate-backend/internal/shared/storage/object/local"
)

type recordedProgress struct {
	updates []progress.Update
}

func (r *recordedProgress) Record(ctx context.Context, userID string, u progress.Update) (progress.Progress, error) {
	r.updates = append(r.updates, u)
	return progress.Progress{}, nil
}

type failingRunner struct{}

func (failingRunner) Name() string { return "judge0" }

func (failingRunner) Run(ctx context.Context, in ExecuteInput) (any, error) {
	return nil, errors.New("connection refused")
}

func TestExecuteSimulatedNormalizesFencedReply(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: "```json\n{\"stdout\":\"hi\",\"status\":{\"description\":\"Accepted\"}}\n```"})
	svc := NewService(NewMemoryRepo(), &Simulator{LLM: client}, client, nil, nil)

	res, err := svc.Execute(context.Background(), ExecuteInput{SourceCode: "print('hi')", LanguageID: 71})
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Equal(t, "hi", res.Result["stdout"])
	assert.Equal(t, "Running Code...\nOutput:\nhi\nStatus: Success", res.Output)
}

func TestExecuteSimulatedProseFallsBackToRaw(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: "It prints hi"})
	svc := NewService(NewMemoryRepo(), &Simulator{LLM: client}, client, nil, nil)

	res, err := svc.Execute(context.Background(), ExecuteInput{SourceCode: "print('hi')", LanguageID: 71})
	require.NoError(t, err)
	assert.Equal(t, "It prints hi", res.Result["raw"])
	assert.Contains(t, res.Output, "Output:\nIt prints hi")
}

func TestExecuteValidatesInput(t *testing.T) {
	svc := NewService(NewMemoryRepo(), failingRunner{}, llm.NewMockClient(), nil, nil)
	_, err := svc.Execute(context.Background(), ExecuteInput{SourceCode: "  ", LanguageID: 71})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Execute(context.Background(), ExecuteInput{SourceCode: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteRunnerFailureIsUpstream(t *testing.T) {
	svc := NewService(NewMemoryRepo(), failingRunner{}, llm.NewMockClient(), nil, nil)
	_, err := svc.Execute(context.Background(), ExecuteInput{SourceCode: "x", LanguageID: 71})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestEvaluateArchivesSourceAndAwardsXP(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"correctness":"ok","scores":{"logic":8}}`})
	recorder := &recordedProgress{}
	store := local.New(t.TempDir())
	svc := NewService(NewMemoryRepo(), &Simulator{LLM: client}, client, store, recorder)

	sub, err := svc.Evaluate(context.Background(), "user-1", EvaluateInput{
		Code:             "def add(a, b): return a + b",
		Language:         "Python",
		ProblemStatement: "Add two numbers",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", sub.Evaluation["correctness"])
	assert.NotEmpty(t, sub.SourceKey)
	assert.Contains(t, sub.SourceKey, "solution.py")

	require.Len(t, recorder.updates, 1)
	assert.Equal(t, progress.ActionCodeSubmit, recorder.updates[0].Action)
	assert.Equal(t, progress.XPCodeEvaluation, recorder.updates[0].XPEarned)

	_, rc, err := svc.Source(context.Background(), "user-1", sub.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b): return a + b", string(data))

	history, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, sub.ID, history[0].ID)

	_, _, err = svc.Source(context.Background(), "user-2", sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluateUpstreamFailurePersistsNothing(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Err: errors.New("boom")})
	recorder := &recordedProgress{}
	repo := NewMemoryRepo()
	svc := NewService(repo, &Simulator{LLM: client}, client, nil, recorder)

	_, err := svc.Evaluate(context.Background(), "user-1", EvaluateInput{Code: "x", Language: "Python"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, recorder.updates)

	history, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
