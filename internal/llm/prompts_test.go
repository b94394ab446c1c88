package llm

import (
	"sort"
	"strings"
	"testing"
)

func TestCatalogHasEveryOperation(t *testing.T) {
	names := PromptNames()
	sort.Strings(names)
	want := []string{
		"code.evaluate", "code.simulate", "communication.tips",
		"interview.evaluate", "interview.questions", "quiz.analyze", "quiz.generate",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected prompt names: %v", names)
	}
}

func TestPromptRendersFields(t *testing.T) {
	req, err := Prompt("interview.evaluate", map[string]any{
		"Question":    "Tell me about yourself.",
		"Transcript":  "I am um a developer",
		"FillerCount": 1,
		"WPM":         120,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if req.Operation != "interview.evaluate" {
		t.Fatalf("unexpected operation %q", req.Operation)
	}
	if !strings.Contains(req.User, "Filler words detected: 1") || !strings.Contains(req.User, "Speech speed: 120 WPM") {
		t.Fatalf("unexpected user prompt: %q", req.User)
	}
	if !strings.Contains(req.System, "clarity_score") {
		t.Fatalf("system prompt missing schema: %q", req.System)
	}
	if req.MaxTokens != 2048 {
		t.Fatalf("expected max tokens 2048, got %d", req.MaxTokens)
	}
}

func TestPromptMissingFieldFails(t *testing.T) {
	if _, err := Prompt("quiz.generate", map[string]any{"Topic": "Percentages"}); err == nil {
		t.Fatalf("expected error for missing Count")
	}
	if _, err := Prompt("nope", nil); err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
}
