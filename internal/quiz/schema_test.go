package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterQuestionsDropsMalformed(t *testing.T) {
	items := []any{
		map[string]any{"question": "ok", "options": []any{"a", "b"}, "correct": float64(1)},
		map[string]any{"question": "", "options": []any{"a", "b"}, "correct": float64(0)},
		map[string]any{"question": "one option", "options": []any{"a"}, "correct": float64(0)},
		map[string]any{"question": "bad index", "options": []any{"a", "b"}, "correct": float64(4)},
		map[string]any{"question": "fraction", "options": []any{"a", "b"}, "correct": 0.5},
		"plain string",
	}
	questions, dropped, err := FilterQuestions(items)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "ok", questions[0].Question)
	assert.Equal(t, 5, dropped)
}
