package llm

import (
	"context"
	"errors"
	"testing"
)

func TestInstrumentedCapsMaxTokens(t *testing.T) {
	mock := NewMockClient(MockResponse{Text: "a"}, MockResponse{Text: "b"}, MockResponse{Text: "c"})
	client := Instrumented{Next: mock, MaxTokens: 1000}

	for _, req := range []Request{{MaxTokens: 4096}, {MaxTokens: 0}, {MaxTokens: 512}} {
		if _, err := client.Complete(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got := []int{mock.Calls[0].MaxTokens, mock.Calls[1].MaxTokens, mock.Calls[2].MaxTokens}
	want := []int{1000, 1000, 512}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: expected max tokens %d, got %d", i, want[i], got[i])
		}
	}
}

func TestInstrumentedPassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	client := Instrumented{Next: NewMockClient(MockResponse{Err: boom})}
	if _, err := client.Complete(context.Background(), Request{Operation: "quiz.generate"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if client.Provider() != "mock" {
		t.Fatalf("unexpected provider %q", client.Provider())
	}
}
