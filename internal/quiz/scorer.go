package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// Score counts answers matching the correct option. Unanswered questions and
// answers for indices outside the question list never count.
func Score(questions []Question, answers AnswerMap) Result {
	score := 0
	for i, q := range questions {
		selected, ok := answers[i]
		if ok && selected == q.Correct {
			score++
		}
	}
	return Result{Score: score, Total: len(questions)}
}

// Missed returns the text of every question not answered correctly.
func Missed(questions []Question, answers AnswerMap) []string {
	var out []string
	for i, q := range questions {
		if selected, ok := answers[i]; !ok || selected != q.Correct {
			out = append(out, q.Question)
		}
	}
	return out
}

// ParseAnswers reads the wire answer object: decimal question indices mapped
// to option indices, plus an optional "score" key carrying a client score.
func ParseAnswers(raw map[string]any) (AnswerMap, *int, error) {
	answers := make(AnswerMap, len(raw))
	var clientScore *int
	for key, value := range raw {
		n, ok := asInt(value)
		if !ok {
			if value == nil {
				continue
			}
			return nil, nil, fmt.Errorf("%w: answer %q is not an integer", ErrInvalidSubmit, key)
		}
		if strings.EqualFold(key, "score") {
			clientScore = &n
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || idx < 0 {
			return nil, nil, fmt.Errorf("%w: unknown answer key %q", ErrInvalidSubmit, key)
		}
		answers[idx] = n
	}
	return answers, clientScore, nil
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
