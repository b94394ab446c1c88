package coding

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresNullSourceKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	sub := Submission{
		ID:         "sub-1",
		UserID:     "user-1",
		Language:   "Python",
		Code:       "print(1)",
		Evaluation: map[string]any{"correctness": "ok"},
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO code_submissions").
		WithArgs(sub.ID, sub.UserID, sub.Language, "", sub.Code, nil, []byte(`{"correctness":"ok"}`), sub.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetMapsNoRowsToNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, user_id, language").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "language", "problem_statement", "code", "source_key", "evaluation", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.Get(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListDecodesEvaluation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "language", "problem_statement", "code", "source_key", "evaluation", "created_at"}).
		AddRow("sub-1", "user-1", "Java", "p", "class A {}", "abc/solution.java", []byte(`{"roadmap":"practice"}`), now)
	mock.ExpectQuery("FROM code_submissions").
		WithArgs("user-1", 50).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	subs, err := repo.List(context.Background(), "user-1", 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 || subs[0].Evaluation["roadmap"] != "practice" || subs[0].SourceKey != "abc/solution.java" {
		t.Fatalf("unexpected submissions %+v", subs)
	}
}
