package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id    TEXT PRIMARY KEY,
			login TEXT NOT NULL,
			name  TEXT
		)`,

		// One row per (user, repository, calendar day). The UNIQUE
		// constraint backs the find-or-create upsert; the engine depends
		// on that key for idempotent re-aggregation of a day.
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id            TEXT NOT NULL,
			repository_id      TEXT NOT NULL,
			date               TEXT NOT NULL,
			commits            INTEGER NOT NULL DEFAULT 0,
			lines_added        INTEGER NOT NULL DEFAULT 0,
			lines_deleted      INTEGER NOT NULL DEFAULT 0,
			prs_opened         INTEGER NOT NULL DEFAULT 0,
			prs_reviewed       INTEGER NOT NULL DEFAULT 0,
			issues_created     INTEGER NOT NULL DEFAULT 0,
			issues_resolved    INTEGER NOT NULL DEFAULT 0,
			weekend_commits    INTEGER NOT NULL DEFAULT 0,
			late_night_commits INTEGER NOT NULL DEFAULT 0,
			review_comments    INTEGER NOT NULL DEFAULT 0,
			avg_commit_hour    REAL,
			avg_review_hours   REAL,
			avg_message_len    REAL,
			burnout_score      REAL,
			UNIQUE(user_id, repository_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			assessed_at   TEXT NOT NULL,
			user_id       TEXT NOT NULL,
			repository_id TEXT,
			window_days   INTEGER NOT NULL,
			score         INTEGER NOT NULL,
			confidence    REAL NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_daily_metrics_user_date ON daily_metrics(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_metrics_repo ON daily_metrics(repository_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_user ON assessments(user_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
