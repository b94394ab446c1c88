package normalize

import (
	"encoding/json"
	"fmt"
)

// Shape is the structure a caller expects from an AI response.
type Shape string

const (
	ShapeArray  Shape = "array"
	ShapeObject Shape = "object"
)

// RawKey is the single key of the fallback object.
const RawKey = "raw"

// Coerce forces an extraction result into shape. It returns []any for
// ShapeArray and map[string]any for ShapeObject, never nil.
func Coerce(res Result, shape Shape) any {
	if shape == ShapeArray {
		return coerceArray(res)
	}
	return coerceObject(res)
}

func coerceArray(res Result) []any {
	v, ok := res.Value()
	if !ok {
		return []any{}
	}
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return []any{}
	}
}

func coerceObject(res Result) map[string]any {
	v, ok := res.Value()
	if !ok {
		return Fallback(res.Raw())
	}
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		if len(t) == 1 {
			if obj, ok := t[0].(map[string]any); ok {
				return obj
			}
		}
	}
	if raw := res.Raw(); raw != "" {
		return Fallback(raw)
	}
	return Fallback(renderRaw(v))
}

// Fallback wraps text that carried no usable object.
func Fallback(text string) map[string]any {
	return map[string]any{RawKey: text}
}

// IsFallback reports whether obj is the {"raw": text} wrapper.
func IsFallback(obj map[string]any) bool {
	if len(obj) != 1 {
		return false
	}
	_, ok := obj[RawKey].(string)
	return ok
}

// Array extracts and coerces raw into an array.
func Array(raw any) []any {
	return coerceArray(Extract(raw))
}

// Object extracts and coerces raw into an object.
func Object(raw any) map[string]any {
	return coerceObject(Extract(raw))
}

// Decode copies a normalized value into a typed destination.
func Decode(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("normalize: encode: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("normalize: decode: %w", err)
	}
	return nil
}

func renderRaw(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// Normalize extracts raw and coerces it into shape.
func Normalize(raw any, shape Shape) any {
	return Coerce(Extract(raw), shape)
}
