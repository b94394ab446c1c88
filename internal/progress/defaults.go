package progress

import "time"

func defaultProgress(userID string, now time.Time) Progress {
	return Progress{
		UserID:     userID,
		Level:      1,
		Badges:     []string{},
		LastActive: now,
	}
}
