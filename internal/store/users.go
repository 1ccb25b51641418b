package store

import (
	"database/sql"
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// UpsertUser creates or updates a user record.
func (db *DB) UpsertUser(u *model.User) error {
	_, err := db.conn.Exec(
		`INSERT INTO users (id, login, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET login = excluded.login, name = excluded.name`,
		u.ID, u.Login, u.Name,
	)
	return err
}

// GetUser returns the user with the given ID, or model.ErrUserNotFound.
func (db *DB) GetUser(id string) (*model.User, error) {
	var u model.User
	var name sql.NullString

	row := db.conn.QueryRow("SELECT id, login, name FROM users WHERE id = ?", id)
	err := row.Scan(&u.ID, &u.Login, &name)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Name = name.String
	return &u, nil
}

// Assessment is one stored burnout assessment run.
type Assessment struct {
	ID           int64     `json:"id"`
	AssessedAt   time.Time `json:"assessed_at"`
	UserID       string    `json:"user_id"`
	RepositoryID string    `json:"repository_id,omitempty"`
	WindowDays   int       `json:"window_days"`
	Score        int       `json:"score"`
	Confidence   float64   `json:"confidence"`
}

// RecordAssessment stores the outcome of a burnout assessment run.
func (db *DB) RecordAssessment(a *model.RiskAssessment) error {
	_, err := db.conn.Exec(
		`INSERT INTO assessments (assessed_at, user_id, repository_id, window_days, score, confidence)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), a.UserID, a.RepositoryID,
		a.WindowDays, a.Score, a.Confidence,
	)
	return err
}

// ListAssessments returns stored assessments for a user, most recent first.
// A limit of 0 returns all of them.
func (db *DB) ListAssessments(userID string, limit int) ([]Assessment, error) {
	query := `SELECT id, assessed_at, user_id, repository_id, window_days, score, confidence
		FROM assessments WHERE user_id = ? ORDER BY id DESC`
	args := []any{userID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Assessment
	for rows.Next() {
		var a Assessment
		var assessedAt string
		var repoID sql.NullString
		if err := rows.Scan(&a.ID, &assessedAt, &a.UserID, &repoID, &a.WindowDays, &a.Score, &a.Confidence); err != nil {
			return nil, err
		}
		a.AssessedAt, _ = time.Parse(time.RFC3339, assessedAt)
		a.RepositoryID = repoID.String
		results = append(results, a)
	}
	return results, rows.Err()
}
