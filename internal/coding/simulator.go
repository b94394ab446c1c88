package coding

import (
	"context"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/shared/metrics"
)

// Simulator asks the AI provider to predict the program output when no
// Judge0 key is configured.
type Simulator struct {
	LLM llm.Client
}

type simulateVars struct {
	LanguageID int
	Stdin      string
	Code       string
}

// Name returns "simulated".
func (s *Simulator) Name() string { return "simulated" }

// Run returns the provider's raw text.
func (s *Simulator) Run(ctx context.Context, in ExecuteInput) (any, error) {
	req, err := llm.Prompt("code.simulate", simulateVars{LanguageID: in.LanguageID, Stdin: in.Stdin, Code: in.SourceCode})
	if err != nil {
		return nil, err
	}
	text, err := s.LLM.Complete(ctx, req)
	if err != nil {
		metrics.IncCodeRun(s.Name(), "error")
		return nil, err
	}
	metrics.IncCodeRun(s.Name(), "ok")
	return text, nil
}
