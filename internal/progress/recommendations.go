package progress

import (
	"fmt"
	"strings"
	"time"
)

// Recommendation is one suggested next step.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Module      string `json:"module"`
}

// SkillScores rates each practice area from 0 to 100.
type SkillScores struct {
	Coding        int `json:"Coding"`
	Aptitude      int `json:"Aptitude"`
	Communication int `json:"Communication"`
}

// Report is the recommendations response.
type Report struct {
	Recommendations []Recommendation `json:"recommendations"`
	Scores          SkillScores      `json:"scores"`
}

// AttemptSummary is the part of a quiz attempt the engine needs.
type AttemptSummary struct {
	Topic string
	Score int
	Total int
}

var skillActions = map[string]string{
	"Coding":        "Solve 2 DSA problems in the Coding Arena today",
	"Aptitude":      "Complete a Quantitative Aptitude quiz in Aptitude Gym",
	"Communication": "Take an AI Mock Interview in Comm Studio",
}

// Scores derives skill scores from activity counters.
func Scores(p Progress) SkillScores {
	return SkillScores{
		Coding:        min(100, p.CodesSubmitted*15),
		Aptitude:      min(100, p.QuizzesTaken*12),
		Communication: min(100, p.InterviewsGiven*20),
	}
}

// Recommend applies the rule set to a snapshot and the newest quiz attempts.
func Recommend(p Progress, recent []AttemptSummary, now time.Time) Report {
	scores := Scores(p)
	rules := []func() (Recommendation, bool){
		func() (Recommendation, bool) { return weakestSkill(scores) },
		func() (Recommendation, bool) { return lowAccuracy(recent) },
		func() (Recommendation, bool) { return inactivity(p, now) },
		func() (Recommendation, bool) { return interviewGap(p) },
		func() (Recommendation, bool) { return codingConsistency(p) },
		func() (Recommendation, bool) { return almostLevelUp(p) },
	}
	out := make([]Recommendation, 0, len(rules))
	for _, rule := range rules {
		if rec, ok := rule(); ok {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		out = append(out, Recommendation{
			Title:       "Keep Going!",
			Description: "Try a coding challenge or take a quiz to earn XP and level up.",
			Priority:    "Low",
			Module:      "dashboard",
		})
	}
	return Report{Recommendations: out, Scores: scores}
}

func weakestSkill(s SkillScores) (Recommendation, bool) {
	// Ties resolve to the earlier skill.
	skill, score := "Coding", s.Coding
	if s.Aptitude < score {
		skill, score = "Aptitude", s.Aptitude
	}
	if s.Communication < score {
		skill, score = "Communication", s.Communication
	}
	if score >= 50 {
		return Recommendation{}, false
	}
	return Recommendation{
		Title:       skill + " Needs Attention",
		Description: skillActions[skill],
		Priority:    "High",
		Module:      strings.ToLower(skill),
	}, true
}

func lowAccuracy(recent []AttemptSummary) (Recommendation, bool) {
	if len(recent) > recentQuizWindow {
		recent = recent[:recentQuizWindow]
	}
	for _, a := range recent {
		if a.Total <= 0 {
			continue
		}
		if float64(a.Score)/float64(a.Total) < lowAccuracyCutoff {
			topic := a.Topic
			if strings.TrimSpace(topic) == "" {
				topic = "General"
			}
			return Recommendation{
				Title:       "Aptitude Accuracy Dropped",
				Description: fmt.Sprintf("Attempt %s (Medium) Quiz Today", topic),
				Priority:    "High",
				Module:      "aptitude",
			}, true
		}
	}
	return Recommendation{}, false
}

func inactivity(p Progress, now time.Time) (Recommendation, bool) {
	if p.LastActive.IsZero() {
		return Recommendation{}, false
	}
	days := int(now.Sub(p.LastActive).Hours() / 24)
	if days < inactivityDays {
		return Recommendation{}, false
	}
	return Recommendation{
		Title:       "You've Been Away",
		Description: fmt.Sprintf("You haven't practiced in %d days. Start with a quick quiz to get back on track.", days),
		Priority:    "High",
		Module:      "aptitude",
	}, true
}

func interviewGap(p Progress) (Recommendation, bool) {
	if p.InterviewsGiven != 0 || p.QuizzesTaken < 2 {
		return Recommendation{}, false
	}
	return Recommendation{
		Title:       "Try a Mock Interview",
		Description: "You've been doing quizzes. Time to test your communication skills with an AI interview.",
		Priority:    "Medium",
		Module:      "communication",
	}, true
}

func codingConsistency(p Progress) (Recommendation, bool) {
	if p.CodesSubmitted <= 0 || p.CodesSubmitted >= 5 {
		return Recommendation{}, false
	}
	return Recommendation{
		Title:       "Build Coding Consistency",
		Description: "Solve at least 1 DSA problem daily to maintain your streak and improve pattern recognition.",
		Priority:    "Medium",
		Module:      "coding",
	}, true
}

func almostLevelUp(p Progress) (Recommendation, bool) {
	toNext := xpPerLevel - p.XP%xpPerLevel
	if toNext > 100 {
		return Recommendation{}, false
	}
	return Recommendation{
		Title:       fmt.Sprintf("Almost Level %d!", p.Level+1),
		Description: fmt.Sprintf("Only %d XP away. Complete one more activity to level up.", toNext),
		Priority:    "Low",
		Module:      "dashboard",
	}, true
}
