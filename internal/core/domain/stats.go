package domain

import "time"

// Stats is the derived aggregate for one user. It is recomputed and
// overwritten after every check-in or failure event, never hand-edited.
type Stats struct {
	UserID     string    `json:"user_id" db:"user_id"`
	Streak     int       `json:"streak" db:"streak"`
	BestStreak int       `json:"best_streak" db:"best_streak"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
