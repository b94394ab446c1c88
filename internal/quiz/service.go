package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/normalize"
	"elevate-backend/internal/progress"
	"elevate-backend/internal/shared/telemetry"
)

const (
	defaultQuestionCount = 10
	historyLimit         = 50
	maxMissedInPrompt    = 5
)

// ProgressRecorder receives XP events.
type ProgressRecorder interface {
	Record(ctx context.Context, userID string, u progress.Update) (progress.Progress, error)
}

type Service struct {
	Repo          Repo
	LLM           llm.Client
	Progress      ProgressRecorder
	QuestionCount int
	now           func() time.Time
}

func NewService(repo Repo, client llm.Client, recorder ProgressRecorder) *Service {
	return &Service{
		Repo:          repo,
		LLM:           client,
		Progress:      recorder,
		QuestionCount: defaultQuestionCount,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type generateVars struct {
	Count int
	Topic string
}

type analyzeVars struct {
	Topic  string
	Score  int
	Total  int
	Wrong  int
	Missed []string
}

// Generate asks the provider for a quiz on topic and stores the usable questions.
func (s *Service) Generate(ctx context.Context, userID, topic string) (Set, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Set{}, ErrInvalidTopic
	}
	req, err := llm.Prompt("quiz.generate", generateVars{Count: s.QuestionCount, Topic: topic})
	if err != nil {
		return Set{}, err
	}
	items, err := llm.CompleteArray(ctx, s.LLM, req)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	questions, dropped, err := FilterQuestions(items)
	if err != nil {
		return Set{}, err
	}
	if dropped > 0 {
		telemetry.Warn("quiz.questions_dropped", map[string]any{
			"topic":   topic,
			"dropped": dropped,
			"kept":    len(questions),
		})
	}

	set := Set{
		ID:        uuid.NewString(),
		UserID:    userID,
		Topic:     topic,
		Questions: questions,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateSet(ctx, set); err != nil {
		return Set{}, err
	}
	return set, nil
}

// Submit grades a submission, records it, awards XP and attaches an analysis.
// The analysis is best-effort: a provider failure leaves the score intact.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Result, Attempt, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return Result{}, Attempt{}, ErrInvalidTopic
	}

	questions := in.Questions
	if len(questions) == 0 && in.QuizID != "" {
		set, err := s.Repo.GetSet(ctx, userID, in.QuizID)
		if err != nil {
			return Result{}, Attempt{}, err
		}
		questions = set.Questions
	}

	var res Result
	var missed []string
	if len(questions) > 0 {
		res = Score(questions, in.Answers)
		missed = Missed(questions, in.Answers)
	} else {
		if in.TotalQuestions < 0 {
			return Result{}, Attempt{}, ErrInvalidSubmit
		}
		res.Total = in.TotalQuestions
		if in.ClientScore != nil {
			res.Score = clamp(*in.ClientScore, 0, res.Total)
		}
	}

	attempt := Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    in.QuizID,
		Topic:     in.Topic,
		Score:     res.Score,
		Total:     res.Total,
		Answers:   in.Answers,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateAttempt(ctx, attempt); err != nil {
		return Result{}, Attempt{}, err
	}
	if s.Progress != nil {
		if _, err := s.Progress.Record(ctx, userID, progress.Update{
			Action:   progress.ActionQuizComplete,
			XPEarned: res.Score * progress.XPPerQuizPoint,
			Details:  map[string]any{"topic": in.Topic, "score": res.Score, "total": res.Total},
		}); err != nil {
			return Result{}, Attempt{}, err
		}
	}

	res.Analysis = s.analyze(ctx, in.Topic, res, missed)
	attempt.Analysis = res.Analysis
	if err := s.Repo.SetAnalysis(ctx, userID, attempt.ID, res.Analysis); err != nil {
		telemetry.Error("quiz.analysis_store_failed", map[string]any{
			"attempt_id": attempt.ID,
			"error":      err.Error(),
		})
	}
	return res, attempt, nil
}

func (s *Service) analyze(ctx context.Context, topic string, res Result, missed []string) map[string]any {
	if len(missed) > maxMissedInPrompt {
		missed = missed[:maxMissedInPrompt]
	}
	req, err := llm.Prompt("quiz.analyze", analyzeVars{
		Topic:  topic,
		Score:  res.Score,
		Total:  res.Total,
		Wrong:  res.Total - res.Score,
		Missed: missed,
	})
	if err != nil {
		return normalize.Fallback(err.Error())
	}
	analysis, err := llm.CompleteObject(ctx, s.LLM, req)
	if err != nil {
		telemetry.Warn("quiz.analysis_failed", map[string]any{
			"topic": topic,
			"error": err.Error(),
		})
		return normalize.Fallback("analysis unavailable")
	}
	return analysis
}

// History returns the newest attempts first.
func (s *Service) History(ctx context.Context, userID string) ([]Attempt, error) {
	return s.Repo.ListAttempts(ctx, userID, historyLimit)
}

// RecentAttempts feeds the recommendation engine.
func (s *Service) RecentAttempts(ctx context.Context, userID string, limit int) ([]progress.AttemptSummary, error) {
	attempts, err := s.Repo.ListAttempts(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]progress.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, progress.AttemptSummary{Topic: a.Topic, Score: a.Score, Total: a.Total})
	}
	return out, nil
}
