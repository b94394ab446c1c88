package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAttemptOmitsEmptyQuizID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	attempt := Attempt{
		ID:        "attempt-1",
		UserID:    "user-1",
		Topic:     "Ratios",
		Score:     3,
		Total:     5,
		Answers:   AnswerMap{0: 1},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO quiz_attempts").
		WithArgs(
			attempt.ID,
			attempt.UserID,
			nil, // quiz_id
			attempt.Topic,
			attempt.Score,
			attempt.Total,
			[]byte(`{"0":1}`),
			nil, // analysis
			attempt.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateAttempt(context.Background(), attempt); err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, quiz_id, topic").
		WithArgs("user-1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quiz_id", "topic", "score", "total", "answers", "analysis", "created_at"}).
			AddRow("a1", nil, "Ratios", 4, 5, []byte(`{"1":2}`), []byte(`{"next_topic":"Averages"}`), created))

	got, err := (&PGRepo{DB: db}).ListAttempts(context.Background(), "user-1", 50)
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(got) != 1 || got[0].Answers[1] != 2 || got[0].Analysis["next_topic"] != "Averages" {
		t.Fatalf("unexpected attempts %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetAnalysisNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE quiz_attempts SET analysis").
		WithArgs(sqlmock.AnyArg(), "a1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (&PGRepo{DB: db}).SetAnalysis(context.Background(), "user-1", "a1", map[string]any{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
