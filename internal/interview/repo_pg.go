package interview

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	fillers, err := json.Marshal(rec.Fillers)
	if err != nil {
		return err
	}
	evaluation, err := json.Marshal(rec.Evaluation)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO interview_records (id, user_id, session_id, question_idx, question, transcript, filler_words, speech_wpm, evaluation, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID,
		rec.UserID,
		nullableString(rec.SessionID),
		rec.QuestionIdx,
		rec.Question,
		rec.Transcript,
		fillers,
		rec.WPM,
		evaluation,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, session_id, question_idx, question, transcript, filler_words, speech_wpm, evaluation, created_at
FROM interview_records
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var sessionID sql.NullString
		var fillers, evaluation []byte
		if err := rows.Scan(&rec.ID, &sessionID, &rec.QuestionIdx, &rec.Question, &rec.Transcript,
			&fillers, &rec.WPM, &evaluation, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.UserID = userID
		rec.SessionID = sessionID.String
		if len(fillers) > 0 {
			if err := json.Unmarshal(fillers, &rec.Fillers); err != nil {
				return nil, err
			}
		}
		if err := json.Unmarshal(evaluation, &rec.Evaluation); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
