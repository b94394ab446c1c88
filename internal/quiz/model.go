package quiz

import "time"

// Question is one multiple-choice item. Correct is the 0-based option index.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// AnswerMap maps question index to the selected option index.
type AnswerMap map[int]int

// Result is a graded submission.
type Result struct {
	Score    int            `json:"score"`
	Total    int            `json:"total"`
	Analysis map[string]any `json:"analysis"`
}

// Set is a generated quiz kept so submissions can be graded server-side.
type Set struct {
	ID        string     `json:"quizId"`
	UserID    string     `json:"-"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Attempt is one recorded quiz submission.
type Attempt struct {
	ID        string         `json:"id"`
	UserID    string         `json:"-"`
	QuizID    string         `json:"quizId,omitempty"`
	Topic     string         `json:"topic"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Answers   AnswerMap      `json:"answers"`
	Analysis  map[string]any `json:"analysis,omitempty"`
	CreatedAt time.Time      `json:"timestamp"`
}

// SubmitInput is a submission after request decoding.
type SubmitInput struct {
	Topic          string
	QuizID         string
	Questions      []Question
	Answers        AnswerMap
	ClientScore    *int
	TotalQuestions int
}
