package coding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	evaluation, err := json.Marshal(sub.Evaluation)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO code_submissions (id, user_id, language, problem_statement, code, source_key, evaluation, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID,
		sub.UserID,
		sub.Language,
		sub.ProblemStatement,
		sub.Code,
		nullableString(sub.SourceKey),
		evaluation,
		sub.CreatedAt,
	)
	return err
}

const selectSubmission = `
SELECT id, user_id, language, problem_statement, code, source_key, evaluation, created_at
FROM code_submissions`

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Submission, error) {
	row := r.DB.QueryRowContext(ctx, selectSubmission+`
WHERE id = $1 AND user_id = $2
LIMIT 1`, id, userID)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

func (r *PGRepo) List(ctx context.Context, userID string, limit int) ([]Submission, error) {
	rows, err := r.DB.QueryContext(ctx, selectSubmission+`
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(s scanner) (Submission, error) {
	var sub Submission
	var sourceKey sql.NullString
	var evaluation []byte
	if err := s.Scan(&sub.ID, &sub.UserID, &sub.Language, &sub.ProblemStatement, &sub.Code,
		&sourceKey, &evaluation, &sub.CreatedAt); err != nil {
		return Submission{}, err
	}
	sub.SourceKey = sourceKey.String
	if err := json.Unmarshal(evaluation, &sub.Evaluation); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
