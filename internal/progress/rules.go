package progress

import (
	"math"
	"time"
)

// LevelFor returns the level reached with xp.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/xpPerLevel
}

// Validate checks an update before it is applied.
func (u Update) Validate() error {
	if u.XPEarned < 0 {
		return ErrInvalidUpdate
	}
	switch u.Action {
	case ActionQuizComplete, ActionInterviewComplete, ActionCodeSubmit:
		return nil
	default:
		return ErrInvalidUpdate
	}
}

// Apply returns p with u applied at now.
func Apply(p Progress, u Update, now time.Time) Progress {
	p.XP += u.XPEarned
	p.Level = LevelFor(p.XP)
	switch u.Action {
	case ActionQuizComplete:
		p.QuizzesTaken++
		p.TotalScore += detailInt(u.Details, "score")
	case ActionInterviewComplete:
		p.InterviewsGiven++
	case ActionCodeSubmit:
		p.CodesSubmitted++
	}
	p.Streak = nextStreak(p.Streak, p.LastActive, now)
	p.LastActive = now
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p
}

// nextStreak compares UTC calendar days: same day keeps the streak (at least
// 1), the following day extends it, anything later restarts it.
func nextStreak(streak int, last, now time.Time) int {
	gap := calendarDays(last, now)
	switch {
	case gap <= 0:
		if streak < 1 {
			return 1
		}
		return streak
	case gap == 1:
		return streak + 1
	default:
		return 1
	}
}

func calendarDays(from, to time.Time) int {
	a := truncateDay(from)
	b := truncateDay(to)
	return int(b.Sub(a).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func detailInt(details map[string]any, key string) int {
	switch v := details[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	default:
		return 0
	}
}
