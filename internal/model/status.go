package model

import "time"

// ChoreStatus records one user's progress on one chore for one calendar day.
// Rows are created lazily on the first update for a given day and overwritten
// by later updates the same day.
type ChoreStatus struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChoreID   int64     `json:"chore_id"`
	Date      string    `json:"date"`
	Prepared  bool      `json:"prepared"`
	Verified  bool      `json:"verified"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateLayout is the canonical form of ChoreStatus.Date.
const DateLayout = "2006-01-02"

// Day formats a time as a status date key in the time's location.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}
