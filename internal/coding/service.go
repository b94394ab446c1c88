package coding

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/normalize"
	"elevate-backend/internal/progress"
	"elevate-backend/internal/shared/storage/object"
	"elevate-backend/internal/shared/telemetry"
)

const historyLimit = 50

// ProgressRecorder receives XP events.
type ProgressRecorder interface {
	Record(ctx context.Context, userID string, u progress.Update) (progress.Progress, error)
}

type Service struct {
	Repo     Repo
	Runner   Runner
	LLM      llm.Client
	Store    object.ObjectStore
	Progress ProgressRecorder
	now      func() time.Time
}

func NewService(repo Repo, runner Runner, client llm.Client, store object.ObjectStore, recorder ProgressRecorder) *Service {
	return &Service{
		Repo:     repo,
		Runner:   runner,
		LLM:      client,
		Store:    store,
		Progress: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type evaluateVars struct {
	Problem  string
	Expected string
	Language string
	Code     string
}

// Execute runs the code and renders its console output.
func (s *Service) Execute(ctx context.Context, in ExecuteInput) (RunResult, error) {
	if strings.TrimSpace(in.SourceCode) == "" || in.LanguageID <= 0 {
		return RunResult{}, fmt.Errorf("%w: source_code and language_id are required", ErrInvalidInput)
	}
	raw, err := s.Runner.Run(ctx, in)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	result := normalize.Object(raw)
	return RunResult{
		Result:    result,
		Simulated: s.Runner.Name() != "judge0",
		Output:    FormatRunOutput(in.Stdin, result),
	}, nil
}

// Evaluate reviews a solution, archives its source and awards XP.
func (s *Service) Evaluate(ctx context.Context, userID string, in EvaluateInput) (Submission, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Language) == "" {
		return Submission{}, fmt.Errorf("%w: code and language are required", ErrInvalidInput)
	}
	req, err := llm.Prompt("code.evaluate", evaluateVars{
		Problem:  in.ProblemStatement,
		Expected: in.ExpectedBehavior,
		Language: in.Language,
		Code:     in.Code,
	})
	if err != nil {
		return Submission{}, err
	}
	evaluation, err := llm.CompleteObject(ctx, s.LLM, req)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	sub := Submission{
		ID:               uuid.NewString(),
		UserID:           userID,
		Language:         in.Language,
		ProblemStatement: in.ProblemStatement,
		Code:             in.Code,
		Evaluation:       evaluation,
		CreatedAt:        s.now(),
	}
	if s.Store != nil {
		obj, err := s.Store.Put(ctx, userID, "solution"+extensionFor(in.Language), "text/plain; charset=utf-8", strings.NewReader(in.Code))
		if err != nil {
			telemetry.Error("code.archive_failed", map[string]any{
				"submission_id": sub.ID,
				"error":         err.Error(),
			})
		} else {
			sub.SourceKey = obj.Key
		}
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return Submission{}, err
	}
	if s.Progress != nil {
		if _, err := s.Progress.Record(ctx, userID, progress.Update{
			Action:   progress.ActionCodeSubmit,
			XPEarned: progress.XPCodeEvaluation,
			Details:  map[string]any{"submission_id": sub.ID, "language": sub.Language},
		}); err != nil {
			return Submission{}, err
		}
	}
	return sub, nil
}

// History returns the newest submissions first.
func (s *Service) History(ctx context.Context, userID string) ([]Submission, error) {
	return s.Repo.List(ctx, userID, historyLimit)
}

// Source streams the archived source of a submission.
func (s *Service) Source(ctx context.Context, userID, id string) (Submission, io.ReadCloser, error) {
	sub, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Submission{}, nil, err
	}
	if sub.SourceKey == "" || s.Store == nil {
		return sub, io.NopCloser(strings.NewReader(sub.Code)), nil
	}
	rc, err := s.Store.Open(ctx, sub.SourceKey)
	if err != nil {
		return Submission{}, nil, err
	}
	return sub, rc, nil
}
