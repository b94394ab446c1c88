package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceArray(t *testing.T) {
	assert.Equal(t, []any{float64(1)}, Array(`[1]`))
	assert.Equal(t, []any{map[string]any{"a": "b"}}, Array(`{"a": "b"}`))

	empty := Array("no json here")
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Empty(t, Array(`"just a string"`))
	assert.NotNil(t, Array(nil))
}

func TestCoerceObject(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "b"}, Object(`{"a": "b"}`))
	assert.Equal(t, map[string]any{"a": "b"}, Object(`[{"a": "b"}]`))

	two := Object(`[{"a": 1}, {"b": 2}]`)
	assert.True(t, IsFallback(two))
	assert.Equal(t, `[{"a": 1}, {"b": 2}]`, two[RawKey])
}

func TestCoerceObjectFallbackKeepsOriginalText(t *testing.T) {
	got := Object("Sorry, I cannot evaluate this.")
	assert.Equal(t, map[string]any{"raw": "Sorry, I cannot evaluate this."}, got)
	assert.True(t, IsFallback(got))

	fenced := "```\nnot json at all\n```"
	assert.Equal(t, fenced, Object(fenced)[RawKey])
}

func TestIsFallback(t *testing.T) {
	assert.False(t, IsFallback(map[string]any{"raw": "x", "other": 1}))
	assert.False(t, IsFallback(map[string]any{"raw": 1}))
	assert.False(t, IsFallback(map[string]any{}))
}

func TestRoundTripFencedObject(t *testing.T) {
	objects := []any{
		map[string]any{"clarity_score": float64(8), "improvements": []any{"slow down", "use examples"}},
		[]any{map[string]any{"question": "2+2?", "correct": float64(1)}},
		map[string]any{"nested": map[string]any{"braces": "{ and }"}},
	}
	for _, o := range objects {
		data, err := json.Marshal(o)
		require.NoError(t, err)
		wrapped := "```json\n" + string(data) + "\n```"

		shape := ShapeObject
		if _, ok := o.([]any); ok {
			shape = ShapeArray
		}
		assert.Equal(t, o, Coerce(Extract(StripFences(wrapped)), shape))
	}
}

func TestQuizResponseEndToEnd(t *testing.T) {
	raw := "Here is the quiz:\n```json\n[{\"question\":\"2+2?\",\"options\":[\"3\",\"4\",\"5\",\"6\"],\"correct\":1}]\n```"

	items := Array(raw)
	require.Len(t, items, 1)

	var q struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Correct  int      `json:"correct"`
	}
	require.NoError(t, Decode(items[0], &q))
	assert.Equal(t, 1, q.Correct)
	assert.Len(t, q.Options, 4)

	// Same answer when the fences were stripped first.
	assert.Equal(t, items, Array(StripFences(raw)))
}

func TestNormalizeDispatchesOnShape(t *testing.T) {
	arr, ok := Normalize("```json\n[1, 2]\n```", ShapeArray).([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)

	obj, ok := Normalize("not json", ShapeObject).(map[string]any)
	require.True(t, ok)
	assert.True(t, IsFallback(obj))
}
