package interview

import (
	"strconv"
	"strings"
	"time"
)

// Record is a persisted answer evaluation.
type Record struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	SessionID   string         `json:"sessionId,omitempty"`
	QuestionIdx int            `json:"questionIndex"`
	Question    string         `json:"question"`
	Transcript  string         `json:"transcript"`
	Fillers     map[string]int `json:"filler_words"`
	WPM         int            `json:"speech_wpm"`
	Evaluation  map[string]any `json:"evaluation"`
	CreatedAt   time.Time      `json:"timestamp"`
}

// Evaluation is the typed view of a normalized evaluation object.
type Evaluation struct {
	ClarityScore         *float64 `json:"clarity_score,omitempty"`
	ConfidenceScore      *float64 `json:"confidence_score,omitempty"`
	ProfessionalismScore *float64 `json:"professionalism_score,omitempty"`
	Feedback             string   `json:"feedback,omitempty"`
	Improvements         []string `json:"improvements,omitempty"`
	SampleAnswer         string   `json:"sample_answer,omitempty"`
	FillerAnalysis       string   `json:"filler_analysis,omitempty"`
}

// EvaluationView reads the recognized fields from obj. ok is false when none
// are present, e.g. for the {"raw": ...} fallback.
func EvaluationView(obj map[string]any) (Evaluation, bool) {
	var ev Evaluation
	found := false
	if v, ok := score(obj["clarity_score"]); ok {
		ev.ClarityScore, found = &v, true
	}
	if v, ok := score(obj["confidence_score"]); ok {
		ev.ConfidenceScore, found = &v, true
	}
	if v, ok := score(obj["professionalism_score"]); ok {
		ev.ProfessionalismScore, found = &v, true
	}
	if s, ok := obj["feedback"].(string); ok {
		ev.Feedback, found = s, true
	}
	if s, ok := obj["sample_answer"].(string); ok {
		ev.SampleAnswer, found = s, true
	}
	if s, ok := obj["filler_analysis"].(string); ok {
		ev.FillerAnalysis, found = s, true
	}
	switch items := obj["improvements"].(type) {
	case []any:
		for _, it := range items {
			if s, ok := it.(string); ok {
				ev.Improvements = append(ev.Improvements, s)
			}
		}
		found = true
	case string:
		ev.Improvements, found = []string{items}, true
	}
	return ev, found
}

// score accepts 7, 7.5, "7" and "7/10".
func score(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		head, _, _ := strings.Cut(strings.TrimSpace(t), "/")
		f, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
