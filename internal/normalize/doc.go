// Package normalize turns free-form AI responses into predictable JSON shapes.
//
// A response goes through three steps: StripFences removes markdown code
// fences, Extract finds a JSON value in the text, and Coerce forces that value
// into the array or object shape the caller expects. None of the steps return
// errors; text without usable JSON degrades to an empty array or to the
// {"raw": text} fallback object.
package normalize
