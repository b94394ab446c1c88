package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// Extract finds a JSON value in raw.
//
// Strings are tried in order: the whole trimmed text, the text with fences
// stripped, the interior of the first fenced block, and finally the span from
// the first '{' to the last '}'. The last step is a plain outermost-brace scan:
// prose that itself contains braces around the JSON can defeat it, while braces
// inside JSON string literals are fine because the span goes to a real decoder.
//
// Values that are already structured skip text extraction.
func Extract(raw any) Result {
	switch v := raw.(type) {
	case nil:
		return Unparsed("")
	case string:
		return extractText(v)
	case []byte:
		return extractText(string(v))
	case json.RawMessage:
		return extractText(string(v))
	case map[string]any, []any:
		return Parsed(v, SourceNative)
	default:
		generic, err := toGeneric(v)
		if err != nil {
			return Unparsed("")
		}
		return Parsed(generic, SourceNative)
	}
}

func extractText(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unparsed(text)
	}
	if v, ok := parse(trimmed); ok {
		return parsedText(v, SourceWhole, text)
	}

	stripped := StripFences(trimmed)
	if stripped != trimmed {
		if v, ok := parse(stripped); ok {
			return parsedText(v, SourceStripped, text)
		}
	}

	candidate := stripped
	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		inner := strings.TrimSpace(m[1])
		if v, ok := parse(inner); ok {
			return parsedText(v, SourceFenced, text)
		}
		candidate = inner
	}

	if span, ok := braceSpan(candidate); ok {
		if v, ok := parse(span); ok {
			return parsedText(v, SourceBraces, text)
		}
	}
	return Unparsed(text)
}

func parsedText(v any, src Source, text string) Result {
	r := Parsed(v, src)
	r.raw = text
	return r
}

func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parse(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// toGeneric converts typed Go values into the map/slice form the decoder produces.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
