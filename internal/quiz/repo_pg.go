package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateSet(ctx context.Context, set Set) error {
	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO quiz_sets (id, user_id, topic, questions, created_at)
VALUES ($1, $2, $3, $4, $5)`,
		set.ID, set.UserID, set.Topic, questions, set.CreatedAt)
	return err
}

func (r *PGRepo) GetSet(ctx context.Context, userID, quizID string) (Set, error) {
	const query = `
SELECT id, user_id, topic, questions, created_at
FROM quiz_sets
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var set Set
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, quizID, userID).Scan(
		&set.ID, &set.UserID, &set.Topic, &questions, &set.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Set{}, ErrNotFound
		}
		return Set{}, err
	}
	if err := json.Unmarshal(questions, &set.Questions); err != nil {
		return Set{}, err
	}
	return set, nil
}

func (r *PGRepo) CreateAttempt(ctx context.Context, attempt Attempt) error {
	answers, err := json.Marshal(encodeAnswers(attempt.Answers))
	if err != nil {
		return err
	}
	analysis, err := marshalNullable(attempt.Analysis)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO quiz_attempts (id, user_id, quiz_id, topic, score, total, answers, analysis, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		attempt.ID,
		attempt.UserID,
		nullableString(attempt.QuizID),
		attempt.Topic,
		attempt.Score,
		attempt.Total,
		answers,
		analysis,
		attempt.CreatedAt,
	)
	return err
}

func (r *PGRepo) SetAnalysis(ctx context.Context, userID, attemptID string, analysis map[string]any) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `
UPDATE quiz_attempts SET analysis = $1 WHERE id = $2 AND user_id = $3`, payload, attemptID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, quiz_id, topic, score, total, answers, analysis, created_at
FROM quiz_attempts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var quizID sql.NullString
		var answers, analysis []byte
		if err := rows.Scan(&a.ID, &quizID, &a.Topic, &a.Score, &a.Total, &answers, &analysis, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.UserID = userID
		a.QuizID = quizID.String
		if len(answers) > 0 {
			var wire map[string]int
			if err := json.Unmarshal(answers, &wire); err != nil {
				return nil, err
			}
			a.Answers = decodeAnswers(wire)
		}
		if len(analysis) > 0 {
			if err := json.Unmarshal(analysis, &a.Analysis); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func encodeAnswers(answers AnswerMap) map[string]int {
	out := make(map[string]int, len(answers))
	for k, v := range answers {
		out[strconv.Itoa(k)] = v
	}
	return out
}

func decodeAnswers(wire map[string]int) AnswerMap {
	out := make(AnswerMap, len(wire))
	for k, v := range wire {
		if idx, err := strconv.Atoi(k); err == nil {
			out[idx] = v
		}
	}
	return out
}

func marshalNullable(v map[string]any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
