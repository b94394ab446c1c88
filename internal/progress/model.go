package progress

import "time"

// Action identifies the activity that earned XP.
type Action string

const (
	ActionQuizComplete      Action = "quiz_complete"
	ActionInterviewComplete Action = "interview_complete"
	ActionCodeSubmit        Action = "code_submit"
)

// XP awarded per activity.
const (
	XPPerQuizPoint    = 10
	XPInterviewBatch  = 50
	XPCodeEvaluation  = 25
	xpPerLevel        = 500
	recentQuizWindow  = 10
	inactivityDays    = 3
	lowAccuracyCutoff = 0.6
)

// Progress is a user's gamification snapshot.
type Progress struct {
	UserID          string    `json:"-"`
	XP              int       `json:"xp"`
	Level           int       `json:"level"`
	Streak          int       `json:"streak"`
	TotalScore      int       `json:"total_score"`
	QuizzesTaken    int       `json:"quizzes_taken"`
	InterviewsGiven int       `json:"interviews_given"`
	CodesSubmitted  int       `json:"codes_submitted"`
	Badges          []string  `json:"badges"`
	LastActive      time.Time `json:"last_active"`
}

// Update is one XP-earning event.
type Update struct {
	Action   Action         `json:"action"`
	XPEarned int            `json:"xp_earned"`
	Details  map[string]any `json:"details"`
}

// Event is an applied update, kept for auditing.
type Event struct {
	UserID    string
	Action    Action
	XPEarned  int
	Details   map[string]any
	CreatedAt time.Time
}
