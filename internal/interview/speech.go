package interview

import (
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
)

// FillerWords is the vocabulary counted by CountFillers.
var FillerWords = []string{
	"um", "uh", "like", "you know", "basically", "actually", "so", "well", "i mean", "kind of", "sort of",
}

var fillerPatterns = compileFillers(FillerWords)

func compileFillers(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

// FillerReport is the filler-word breakdown of a transcript.
type FillerReport struct {
	Total   int            `json:"total"`
	Details map[string]int `json:"details"`
}

// CountFillers counts whole-word, case-insensitive filler occurrences.
// Each phrase is counted independently, so "you know" does not affect "so".
func CountFillers(text string) FillerReport {
	report := FillerReport{Details: map[string]int{}}
	for i, re := range fillerPatterns {
		n := len(re.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		report.Details[FillerWords[i]] = n
		report.Total += n
	}
	return report
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// minElapsedMinutes is the 3 second floor below which WPM is not updated.
const minElapsedMinutes = 0.05

// WordsPerMinute returns round(words/elapsed), or previous while elapsed is
// within the first three seconds.
func WordsPerMinute(words int, elapsedMinutes float64, previous int) int {
	if elapsedMinutes <= minElapsedMinutes {
		return previous
	}
	return int(math.Round(float64(words) / elapsedMinutes))
}

// Metrics are the derived speech metrics for one answer.
type Metrics struct {
	Fillers   FillerReport `json:"fillers"`
	WordCount int          `json:"word_count"`
	WPM       int          `json:"wpm"`
}

// MetricsFor computes the metrics of a finished answer.
func MetricsFor(transcript string, elapsed time.Duration) Metrics {
	words := WordCount(transcript)
	return Metrics{
		Fillers:   CountFillers(transcript),
		WordCount: words,
		WPM:       WordsPerMinute(words, elapsed.Minutes(), 0),
	}
}

// SpeechTracker follows a live transcript for a single question.
// Stop is the cancellation point: later updates are ignored and the last
// transcript is kept.
type SpeechTracker struct {
	mu         sync.Mutex
	started    time.Time
	running    bool
	transcript string
	metrics    Metrics
}

// Start begins a recording session at now, discarding previous state.
func (t *SpeechTracker) Start(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = now
	t.running = true
	t.transcript = ""
	t.metrics = Metrics{Fillers: FillerReport{Details: map[string]int{}}}
}

// Update replaces the transcript and recomputes metrics.
func (t *SpeechTracker) Update(transcript string, now time.Time) Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.metrics
	}
	t.transcript = transcript
	words := WordCount(transcript)
	t.metrics.Fillers = CountFillers(transcript)
	t.metrics.WordCount = words
	t.metrics.WPM = WordsPerMinute(words, now.Sub(t.started).Minutes(), t.metrics.WPM)
	return t.metrics
}

// Stop ends the session and returns the final metrics.
func (t *SpeechTracker) Stop() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	return t.metrics
}

// Transcript returns the last accepted transcript.
func (t *SpeechTracker) Transcript() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transcript
}

// Running reports whether a session is active.
func (t *SpeechTracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
