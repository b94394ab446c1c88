package normalize

// Source records which extraction step produced a value.
type Source string

const (
	SourceNative   Source = "native"
	SourceWhole    Source = "whole"
	SourceStripped Source = "stripped"
	SourceFenced   Source = "fenced"
	SourceBraces   Source = "braces"
	SourceNone     Source = "unparsed"
)

// Result is the tagged outcome of Extract: either a parsed JSON value or the
// original text that could not be parsed.
type Result struct {
	value  any
	raw    string
	ok     bool
	source Source
}

// Parsed builds a successful result.
func Parsed(v any, src Source) Result {
	return Result{value: v, ok: true, source: src}
}

// Unparsed builds the "no structure available" result carrying the original text.
func Unparsed(raw string) Result {
	return Result{raw: raw, source: SourceNone}
}

// Value returns the parsed value and whether there was one.
func (r Result) Value() (any, bool) {
	return r.value, r.ok
}

// Raw returns the original text, if the input was text.
func (r Result) Raw() string {
	return r.raw
}

// IsParsed reports whether extraction found JSON.
func (r Result) IsParsed() bool {
	return r.ok
}

// Source reports which step produced the result.
func (r Result) Source() Source {
	return r.source
}
