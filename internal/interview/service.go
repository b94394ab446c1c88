package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/progress"
	"elevate-backend/internal/shared/telemetry"
)

const (
	defaultQuestionCount = 5
	defaultTipCount      = 5
	historyLimit         = 50
)

// FallbackQuestions are served when the provider fails or returns nothing usable.
var FallbackQuestions = []string{
	"Tell me about yourself and your background.",
	"What are your greatest strengths and how do they apply to this role?",
	"Describe a challenging project you worked on and how you handled it.",
	"Where do you see yourself in five years?",
	"Why should we hire you over other candidates?",
}

// ProgressRecorder receives XP events.
type ProgressRecorder interface {
	Record(ctx context.Context, userID string, u progress.Update) (progress.Progress, error)
}

type Service struct {
	Repo          Repo
	LLM           llm.Client
	Progress      ProgressRecorder
	Policy        Policy
	QuestionCount int
	now           func() time.Time
}

func NewService(repo Repo, client llm.Client, recorder ProgressRecorder, policy Policy) *Service {
	return &Service{
		Repo:          repo,
		LLM:           client,
		Progress:      recorder,
		Policy:        policy,
		QuestionCount: defaultQuestionCount,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type questionVars struct {
	Count int
	Role  string
}

type evaluateVars struct {
	Question    string
	Transcript  string
	FillerCount int
	WPM         int
}

type tipVars struct {
	Count int
	Focus string
}

// Questions returns interview questions. fallback is true when the fixed list
// was served instead of generated questions.
func (s *Service) Questions(ctx context.Context, role string) (questions []string, fallback bool) {
	req, err := llm.Prompt("interview.questions", questionVars{Count: s.QuestionCount, Role: strings.TrimSpace(role)})
	if err != nil {
		return fallbackQuestions(), true
	}
	items, err := llm.CompleteArray(ctx, s.LLM, req)
	if err != nil {
		telemetry.Warn("interview.questions_fallback", map[string]any{"error": err.Error()})
		return fallbackQuestions(), true
	}
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if q := strings.TrimSpace(t); q != "" {
				questions = append(questions, q)
			}
		case map[string]any:
			if q, ok := t["question"].(string); ok && strings.TrimSpace(q) != "" {
				questions = append(questions, strings.TrimSpace(q))
			}
		}
	}
	if len(questions) == 0 {
		return fallbackQuestions(), true
	}
	return questions, false
}

func fallbackQuestions() []string {
	return append([]string(nil), FallbackQuestions...)
}

// EvaluateInput is a single answer submitted for feedback.
type EvaluateInput struct {
	Question   string
	Transcript string
	Elapsed    time.Duration
}

// Evaluate scores one answer and stores it.
func (s *Service) Evaluate(ctx context.Context, userID string, in EvaluateInput) (Record, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Transcript) == "" {
		return Record{}, fmt.Errorf("%w: question and transcript are required", ErrInvalidInput)
	}
	agg := Aggregator{Evaluator: s.evaluator(), Policy: PolicyFailFast}
	results, err := agg.Aggregate(ctx, []string{in.Question}, map[int]Take{
		0: {Transcript: in.Transcript, Elapsed: in.Elapsed},
	})
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	rec := s.record(userID, "", results[0])
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// SubmitInput is a whole mock interview.
type SubmitInput struct {
	SessionID string
	Questions []string
	Takes     map[int]Take
}

// BatchResult summarizes a submitted interview.
type BatchResult struct {
	SessionID string           `json:"sessionId"`
	Results   []QuestionResult `json:"results"`
	Evaluated int              `json:"evaluated"`
	Failed    int              `json:"failed"`
	XPEarned  int              `json:"xp_earned"`
}

// Submit evaluates a mock interview with the configured batch policy, stores
// the evaluated answers and awards XP when at least one answer was evaluated.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (BatchResult, error) {
	if len(in.Questions) == 0 {
		return BatchResult{}, fmt.Errorf("%w: questions are required", ErrInvalidInput)
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	agg := Aggregator{Evaluator: s.evaluator(), Policy: s.Policy}
	results, err := agg.Aggregate(ctx, in.Questions, in.Takes)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	out := BatchResult{SessionID: sessionID, Results: results}
	for _, r := range results {
		if !r.OK() {
			out.Failed++
			continue
		}
		out.Evaluated++
		if err := s.Repo.Create(ctx, s.record(userID, sessionID, r)); err != nil {
			return BatchResult{}, err
		}
	}
	if out.Evaluated > 0 && s.Progress != nil {
		if _, err := s.Progress.Record(ctx, userID, progress.Update{
			Action:   progress.ActionInterviewComplete,
			XPEarned: progress.XPInterviewBatch,
			Details:  map[string]any{"session_id": sessionID, "evaluated": out.Evaluated, "failed": out.Failed},
		}); err != nil {
			return BatchResult{}, err
		}
		out.XPEarned = progress.XPInterviewBatch
	}
	if out.Failed > 0 {
		telemetry.Warn("interview.batch_partial", map[string]any{
			"session_id": sessionID,
			"evaluated":  out.Evaluated,
			"failed":     out.Failed,
		})
	}
	return out, nil
}

// Tips asks the provider for communication tips.
func (s *Service) Tips(ctx context.Context, focus string) (map[string]any, error) {
	req, err := llm.Prompt("communication.tips", tipVars{Count: defaultTipCount, Focus: strings.TrimSpace(focus)})
	if err != nil {
		return nil, err
	}
	tips, err := llm.CompleteObject(ctx, s.LLM, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return tips, nil
}

// History returns the newest evaluated answers first.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	return s.Repo.List(ctx, userID, historyLimit)
}

func (s *Service) evaluator() Evaluator {
	return EvaluatorFunc(func(ctx context.Context, in EvalInput) (string, error) {
		req, err := llm.Prompt("interview.evaluate", evaluateVars{
			Question:    in.Question,
			Transcript:  in.Transcript,
			FillerCount: in.Metrics.Fillers.Total,
			WPM:         in.Metrics.WPM,
		})
		if err != nil {
			return "", err
		}
		return s.LLM.Complete(ctx, req)
	})
}

func (s *Service) record(userID, sessionID string, r QuestionResult) Record {
	return Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionID:   sessionID,
		QuestionIdx: r.Index,
		Question:    r.Question,
		Transcript:  r.Transcript,
		Fillers:     r.Metrics.Fillers.Details,
		WPM:         r.Metrics.WPM,
		Evaluation:  r.Evaluation,
		CreatedAt:   s.now(),
	}
}
