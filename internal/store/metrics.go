package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// dateLayout is how metric dates are stored; day granularity only.
const dateLayout = "2006-01-02"

// UpsertDailyMetric stores a daily metric, replacing any existing record
// for the same (user, repository, date). The upsert is an explicit
// find-then-update-or-create so re-aggregating a day stays idempotent
// regardless of the backing store.
//
// An existing burnout score survives the update; aggregation never erases
// a previously stored assessment sample.
func (db *DB) UpsertDailyMetric(m *model.DailyMetric) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	date := m.Date.Format(dateLayout)

	var id int64
	row := tx.QueryRow(
		"SELECT id FROM daily_metrics WHERE user_id = ? AND repository_id = ? AND date = ?",
		m.UserID, m.RepositoryID, date,
	)
	err = row.Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(
			`INSERT INTO daily_metrics
			(user_id, repository_id, date, commits, lines_added, lines_deleted,
			 prs_opened, prs_reviewed, issues_created, issues_resolved,
			 weekend_commits, late_night_commits, review_comments,
			 avg_commit_hour, avg_review_hours, avg_message_len, burnout_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.UserID, m.RepositoryID, date, m.Commits, m.LinesAdded, m.LinesDeleted,
			m.PRsOpened, m.PRsReviewed, m.IssuesCreated, m.IssuesResolved,
			m.WeekendCommits, m.LateNightCommits, m.ReviewComments,
			m.AvgCommitHour, m.AvgReviewHours, m.AvgMessageLen, m.BurnoutScore,
		)
	case err != nil:
		return fmt.Errorf("finding daily metric: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE daily_metrics SET
			 commits = ?, lines_added = ?, lines_deleted = ?,
			 prs_opened = ?, prs_reviewed = ?, issues_created = ?, issues_resolved = ?,
			 weekend_commits = ?, late_night_commits = ?, review_comments = ?,
			 avg_commit_hour = ?, avg_review_hours = ?, avg_message_len = ?
			 WHERE id = ?`,
			m.Commits, m.LinesAdded, m.LinesDeleted,
			m.PRsOpened, m.PRsReviewed, m.IssuesCreated, m.IssuesResolved,
			m.WeekendCommits, m.LateNightCommits, m.ReviewComments,
			m.AvgCommitHour, m.AvgReviewHours, m.AvgMessageLen,
			id,
		)
	}
	if err != nil {
		return fmt.Errorf("writing daily metric: %w", err)
	}

	return tx.Commit()
}

// DailyMetrics returns stored metrics for a user within [start, end]
// inclusive, ascending by date. An empty repositoryID matches all
// repositories; per-repository rows are then merged into one row per
// calendar day, so callers always see day-level granularity.
func (db *DB) DailyMetrics(userID, repositoryID string, start, end time.Time) ([]model.DailyMetric, error) {
	query := `SELECT user_id, repository_id, date, commits, lines_added, lines_deleted,
		prs_opened, prs_reviewed, issues_created, issues_resolved,
		weekend_commits, late_night_commits, review_comments,
		avg_commit_hour, avg_review_hours, avg_message_len, burnout_score
		FROM daily_metrics WHERE user_id = ? AND date >= ? AND date <= ?`
	args := []any{userID, start.Format(dateLayout), end.Format(dateLayout)}

	if repositoryID != "" {
		query += " AND repository_id = ?"
		args = append(args, repositoryID)
	}

	query += " ORDER BY date ASC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []model.DailyMetric
	for rows.Next() {
		m, err := scanDailyMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if repositoryID == "" {
		metrics = mergeMetricsByDay(metrics)
	}
	return metrics, nil
}

// mergeMetricsByDay collapses per-repository rows onto one row per calendar
// day: counts sum, commit-derived averages recombine weighted by each row's
// commit count, and review latency recombines weighted by PRs opened. The
// merged row carries an empty repository ID. Input order (ascending by
// date) is preserved.
func mergeMetricsByDay(metrics []model.DailyMetric) []model.DailyMetric {
	type dayTotals struct {
		metric    model.DailyMetric
		hourSum   float64
		hourN     int
		msgSum    float64
		msgN      int
		reviewSum float64
		reviewN   int
	}

	index := make(map[string]int, len(metrics))
	var days []dayTotals

	for _, m := range metrics {
		key := m.Date.Format(dateLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, dayTotals{metric: model.DailyMetric{
				UserID: m.UserID,
				Date:   m.Date,
			}})
		}
		d := &days[i]

		d.metric.Commits += m.Commits
		d.metric.LinesAdded += m.LinesAdded
		d.metric.LinesDeleted += m.LinesDeleted
		d.metric.PRsOpened += m.PRsOpened
		d.metric.PRsReviewed += m.PRsReviewed
		d.metric.IssuesCreated += m.IssuesCreated
		d.metric.IssuesResolved += m.IssuesResolved
		d.metric.WeekendCommits += m.WeekendCommits
		d.metric.LateNightCommits += m.LateNightCommits
		d.metric.ReviewComments += m.ReviewComments

		if m.AvgCommitHour != nil {
			w := weightOrOne(m.Commits)
			d.hourSum += *m.AvgCommitHour * float64(w)
			d.hourN += w
		}
		if m.AvgMessageLen != nil {
			w := weightOrOne(m.Commits)
			d.msgSum += *m.AvgMessageLen * float64(w)
			d.msgN += w
		}
		if m.AvgReviewHours != nil {
			w := weightOrOne(m.PRsOpened)
			d.reviewSum += *m.AvgReviewHours * float64(w)
			d.reviewN += w
		}

		// RecordRiskScore writes the same score to every repository row
		// of a day, so the first value stands for all of them.
		if m.BurnoutScore != nil && d.metric.BurnoutScore == nil {
			s := *m.BurnoutScore
			d.metric.BurnoutScore = &s
		}
	}

	merged := make([]model.DailyMetric, len(days))
	for i, d := range days {
		if d.hourN > 0 {
			v := d.hourSum / float64(d.hourN)
			d.metric.AvgCommitHour = &v
		}
		if d.msgN > 0 {
			v := d.msgSum / float64(d.msgN)
			d.metric.AvgMessageLen = &v
		}
		if d.reviewN > 0 {
			v := d.reviewSum / float64(d.reviewN)
			d.metric.AvgReviewHours = &v
		}
		merged[i] = d.metric
	}
	return merged
}

func weightOrOne(n int) int {
	if n > 0 {
		return n
	}
	return 1
}

func scanDailyMetric(rows *sql.Rows) (model.DailyMetric, error) {
	var m model.DailyMetric
	var date string
	var avgHour, avgReview, avgMsgLen, burnout sql.NullFloat64

	err := rows.Scan(
		&m.UserID, &m.RepositoryID, &date, &m.Commits, &m.LinesAdded, &m.LinesDeleted,
		&m.PRsOpened, &m.PRsReviewed, &m.IssuesCreated, &m.IssuesResolved,
		&m.WeekendCommits, &m.LateNightCommits, &m.ReviewComments,
		&avgHour, &avgReview, &avgMsgLen, &burnout,
	)
	if err != nil {
		return m, err
	}

	m.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return m, fmt.Errorf("parsing metric date %q: %w", date, err)
	}

	m.AvgCommitHour = nullableFloat(avgHour)
	m.AvgReviewHours = nullableFloat(avgReview)
	m.AvgMessageLen = nullableFloat(avgMsgLen)
	m.BurnoutScore = nullableFloat(burnout)
	return m, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// RecordRiskScore back-fills the burnout score on the metric rows of a
// given day. Rows that do not exist are left alone; the historical trend
// is allowed to be sparse.
func (db *DB) RecordRiskScore(userID, repositoryID string, date time.Time, score float64) error {
	query := "UPDATE daily_metrics SET burnout_score = ? WHERE user_id = ? AND date = ?"
	args := []any{score, userID, date.Format(dateLayout)}

	if repositoryID != "" {
		query += " AND repository_id = ?"
		args = append(args, repositoryID)
	}

	_, err := db.conn.Exec(query, args...)
	return err
}
