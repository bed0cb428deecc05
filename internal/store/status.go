package store

import (
	"database/sql"
	"fmt"

	"choreboard/internal/model"
)

type StatusStore struct {
	db *sql.DB
}

func NewStatusStore(db *sql.DB) *StatusStore {
	return &StatusStore{db: db}
}

func scanStatus(scanner interface{ Scan(...any) error }) (*model.ChoreStatus, error) {
	var st model.ChoreStatus
	err := scanner.Scan(
		&st.ID, &st.UserID, &st.ChoreID, &st.Date,
		&st.Prepared, &st.Verified, &st.Completed,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const statusCols = `id, user_id, chore_id, date, prepared, verified, completed, created_at, updated_at`

// StatusUpdate carries the three checkbox flags for one chore in a dashboard
// submission.
type StatusUpdate struct {
	ChoreID   int64
	Prepared  bool
	Verified  bool
	Completed bool
}

// GetDay returns the status row for a user/chore/day, or nil if none exists yet.
func (s *StatusStore) GetDay(userID, choreID int64, date string) (*model.ChoreStatus, error) {
	row := s.db.QueryRow(
		`SELECT `+statusCols+` FROM chore_statuses WHERE user_id = ? AND chore_id = ? AND date = ?`,
		userID, choreID, date,
	)
	st, err := scanStatus(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	return st, nil
}

func (s *StatusStore) ListForUserOnDate(userID int64, date string) ([]model.ChoreStatus, error) {
	rows, err := s.db.Query(
		`SELECT `+statusCols+` FROM chore_statuses WHERE user_id = ? AND date = ? ORDER BY chore_id ASC`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []model.ChoreStatus
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, *st)
	}
	return statuses, rows.Err()
}

// UpsertDay applies a batch of checkbox updates for one user and day in a
// single transaction. Each chore's row is created on first update and
// overwritten afterwards; the one-row-per-user-chore-day rule lives here, the
// table carries no unique constraint.
func (s *StatusStore) UpsertDay(userID int64, date string, updates []StatusUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		var id int64
		err := tx.QueryRow(
			`SELECT id FROM chore_statuses WHERE user_id = ? AND chore_id = ? AND date = ?`,
			userID, u.ChoreID, date,
		).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.Exec(
				`INSERT INTO chore_statuses (user_id, chore_id, date, prepared, verified, completed) VALUES (?, ?, ?, ?, ?, ?)`,
				userID, u.ChoreID, date, u.Prepared, u.Verified, u.Completed,
			); err != nil {
				return fmt.Errorf("insert status: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find status: %w", err)
		default:
			if _, err := tx.Exec(
				`UPDATE chore_statuses SET prepared = ?, verified = ?, completed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				u.Prepared, u.Verified, u.Completed, id,
			); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
		}
	}
	return tx.Commit()
}

// DaySummary returns the points earned and the completed-chore count for a
// user on a given day. Points are the sum of the value of completed chores.
func (s *StatusStore) DaySummary(userID int64, date string) (points float64, completed int, err error) {
	row := s.db.QueryRow(
		`SELECT COALESCE(SUM(c.value), 0), COUNT(*)
		 FROM chore_statuses s
		 JOIN chores c ON c.id = s.chore_id
		 WHERE s.user_id = ? AND s.date = ? AND s.completed = 1`,
		userID, date,
	)
	if err := row.Scan(&points, &completed); err != nil {
		return 0, 0, fmt.Errorf("day summary: %w", err)
	}
	return points, completed, nil
}

// DigestRow is one user's line in the nightly completion digest.
type DigestRow struct {
	Username  string
	Completed int
	Points    float64
}

// Digest aggregates completions per user for a given day.
func (s *StatusStore) Digest(date string) ([]DigestRow, error) {
	rows, err := s.db.Query(
		`SELECT u.username, COUNT(*), COALESCE(SUM(c.value), 0)
		 FROM chore_statuses s
		 JOIN users u ON u.id = s.user_id
		 JOIN chores c ON c.id = s.chore_id
		 WHERE s.date = ? AND s.completed = 1
		 GROUP BY u.id
		 ORDER BY u.username ASC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	defer rows.Close()

	var digest []DigestRow
	for rows.Next() {
		var d DigestRow
		if err := rows.Scan(&d.Username, &d.Completed, &d.Points); err != nil {
			return nil, fmt.Errorf("scan digest row: %w", err)
		}
		digest = append(digest, d)
	}
	return digest, rows.Err()
}
