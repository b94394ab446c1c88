package progress

import (
	"testing"
	"time"
)

func titles(r Report) []string {
	out := make([]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		out = append(out, rec.Title)
	}
	return out
}

func TestRecommendNewUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	report := Recommend(defaultProgress("u", now), nil, now)

	got := titles(report)
	if len(got) != 1 || got[0] != "Coding Needs Attention" {
		t.Fatalf("unexpected recommendations %v", got)
	}
	if report.Recommendations[0].Module != "coding" || report.Recommendations[0].Priority != "High" {
		t.Fatalf("unexpected first recommendation %+v", report.Recommendations[0])
	}
}

func TestRecommendAllRules(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := Progress{
		XP:             420,
		Level:          1,
		QuizzesTaken:   3,
		CodesSubmitted: 2,
		LastActive:     now.Add(-4 * 24 * time.Hour),
	}
	recent := []AttemptSummary{
		{Topic: "Percentages", Score: 9, Total: 10},
		{Topic: "Probability", Score: 3, Total: 10},
		{Topic: "Ratios", Score: 1, Total: 10},
	}
	report := Recommend(p, recent, now)

	want := []string{
		"Communication Needs Attention",
		"Aptitude Accuracy Dropped",
		"You've Been Away",
		"Try a Mock Interview",
		"Build Coding Consistency",
		"Almost Level 2!",
	}
	got := titles(report)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %q want %q", i, got[i], want[i])
		}
	}
	if d := report.Recommendations[1].Description; d != "Attempt Probability (Medium) Quiz Today" {
		t.Fatalf("unexpected accuracy description %q", d)
	}
	if d := report.Recommendations[2].Description; d != "You haven't practiced in 4 days. Start with a quick quiz to get back on track." {
		t.Fatalf("unexpected inactivity description %q", d)
	}
	if d := report.Recommendations[5].Description; d != "Only 80 XP away. Complete one more activity to level up." {
		t.Fatalf("unexpected level description %q", d)
	}
	if report.Scores != (SkillScores{Coding: 30, Aptitude: 36, Communication: 0}) {
		t.Fatalf("unexpected scores %+v", report.Scores)
	}
}

func TestRecommendKeepGoing(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := Progress{XP: 100, Level: 1, QuizzesTaken: 5, InterviewsGiven: 3, CodesSubmitted: 5, LastActive: now}
	report := Recommend(p, []AttemptSummary{{Topic: "x", Score: 0, Total: 0}}, now)
	if got := titles(report); len(got) != 1 || got[0] != "Keep Going!" {
		t.Fatalf("unexpected recommendations %v", got)
	}
}

func TestWeakestSkillTieGoesToCoding(t *testing.T) {
	rec, ok := weakestSkill(SkillScores{Coding: 20, Aptitude: 20, Communication: 20})
	if !ok || rec.Title != "Coding Needs Attention" {
		t.Fatalf("unexpected %+v %v", rec, ok)
	}
}
