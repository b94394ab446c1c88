package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed progress store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string, now time.Time) (Progress, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Progress{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	p, err := s.lockAndEnsure(ctx, tx, userID, now)
	if err != nil {
		return Progress{}, err
	}
	if err = tx.Commit(); err != nil {
		return Progress{}, err
	}
	return p, nil
}

func (s *pgStore) Apply(ctx context.Context, userID string, u Update, now time.Time) (Progress, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Progress{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	p, err := s.lockAndEnsure(ctx, tx, userID, now)
	if err != nil {
		return Progress{}, err
	}
	p = Apply(p, u, now)

	if _, err = tx.ExecContext(ctx, `
UPDATE user_progress SET xp = $1, level = $2, streak = $3, total_score = $4,
  quizzes_taken = $5, interviews_given = $6, codes_submitted = $7, last_active = $8, updated_at = now()
WHERE user_id = $9`,
		p.XP, p.Level, p.Streak, p.TotalScore,
		p.QuizzesTaken, p.InterviewsGiven, p.CodesSubmitted, p.LastActive, userID); err != nil {
		return Progress{}, err
	}

	var details []byte
	if len(u.Details) > 0 {
		if details, err = json.Marshal(u.Details); err != nil {
			return Progress{}, err
		}
	}
	if _, err = tx.ExecContext(ctx, `
INSERT INTO progress_events (user_id, action, xp_earned, details, created_at) VALUES ($1, $2, $3, $4, $5)`,
		userID, string(u.Action), u.XPEarned, nullableJSON(details), now); err != nil {
		return Progress{}, err
	}
	if err = tx.Commit(); err != nil {
		return Progress{}, err
	}
	return p, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string, now time.Time) (Progress, error) {
	p := Progress{UserID: userID}
	var badges []byte
	var lastActive sql.NullTime
	row := tx.QueryRowContext(ctx, `
SELECT xp, level, streak, total_score, quizzes_taken, interviews_given, codes_submitted, badges, last_active
FROM user_progress WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&p.XP, &p.Level, &p.Streak, &p.TotalScore,
		&p.QuizzesTaken, &p.InterviewsGiven, &p.CodesSubmitted, &badges, &lastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			p = defaultProgress(userID, now)
			if _, err = tx.ExecContext(ctx, `
INSERT INTO user_progress (user_id, xp, level, streak, total_score, last_active) VALUES ($1, $2, $3, $4, $5, $6)`,
				userID, p.XP, p.Level, p.Streak, p.TotalScore, p.LastActive); err != nil {
				return Progress{}, err
			}
			return p, nil
		}
		return Progress{}, err
	}
	p.Badges = []string{}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &p.Badges); err != nil {
			return Progress{}, err
		}
	}
	if lastActive.Valid {
		p.LastActive = lastActive.Time.UTC()
	} else {
		p.LastActive = now
	}
	return p, nil
}

func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return data
}
