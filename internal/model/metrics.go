package model

import "time"

// DailyMetric is the per-day aggregate all scorers consume. Exactly one
// record exists per (user, repository, date) triple; Date carries day
// granularity only (midnight UTC).
//
// The timing averages are pointers because "no data" must stay
// distinguishable from a legitimate zero.
type DailyMetric struct {
	UserID       string    `json:"user_id"`
	RepositoryID string    `json:"repository_id"`
	Date         time.Time `json:"date"`

	Commits          int `json:"commits"`
	LinesAdded       int `json:"lines_added"`
	LinesDeleted     int `json:"lines_deleted"`
	PRsOpened        int `json:"prs_opened"`
	PRsReviewed      int `json:"prs_reviewed"`
	IssuesCreated    int `json:"issues_created"`
	IssuesResolved   int `json:"issues_resolved"`
	WeekendCommits   int `json:"weekend_commits"`
	LateNightCommits int `json:"late_night_commits"`
	ReviewComments   int `json:"review_comments"`

	// AvgCommitHour is the mean hour-of-day of the day's commits.
	AvgCommitHour *float64 `json:"avg_commit_hour,omitempty"`

	// AvgReviewHours is the mean hours from PR creation to merge, over
	// PRs opened this day that have since merged.
	AvgReviewHours *float64 `json:"avg_review_hours,omitempty"`

	// AvgMessageLen is the mean commit message length in characters.
	AvgMessageLen *float64 `json:"avg_message_len,omitempty"`

	// BurnoutScore is back-filled by the risk scorer when an assessment
	// is stored; nil for days never assessed.
	BurnoutScore *float64 `json:"burnout_score,omitempty"`
}

// KeyFactor is one of the top contributing factors in a risk assessment.
type KeyFactor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"` // 0-1, rounded to 2 decimals
	Description string  `json:"description"`
}

// ScorePoint is one (date, score) sample of the historical risk trend.
type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// RiskAssessment is the burnout risk scorer's output.
type RiskAssessment struct {
	UserID       string `json:"user_id"`
	RepositoryID string `json:"repository_id,omitempty"`
	WindowDays   int    `json:"window_days"`

	// Score is the composite burnout risk, 0-100.
	Score int `json:"score"`

	// Confidence is 0-1, reflecting how much data supports the score.
	Confidence float64 `json:"confidence"`

	// KeyFactors are the top 3 contributors, highest impact first.
	KeyFactors []KeyFactor `json:"key_factors"`

	// Recommendations holds 3-5 ranked, actionable suggestions.
	Recommendations []string `json:"recommendations"`

	// HistoricalTrend lists previously stored scores in the window,
	// ascending by date. Days never assessed are omitted, so the trend
	// can be sparse or empty.
	HistoricalTrend []ScorePoint `json:"historical_trend"`
}

// DayCount is one zero-filled sample of the daily commit-frequency series.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// LanguageShare is one entry of the top-languages distribution.
type LanguageShare struct {
	Language string  `json:"language"`
	Share    float64 `json:"share"` // fraction of commits, 2 decimals
}

// ProductivityMetrics is the productivity calculator's output.
type ProductivityMetrics struct {
	UserID       string `json:"user_id"`
	RepositoryID string `json:"repository_id,omitempty"`
	Window       Window `json:"window"`

	CommitCount       int `json:"commit_count"`
	PRCount           int `json:"pr_count"`
	IssueCount        int `json:"issue_count"`
	TotalLinesAdded   int `json:"total_lines_added"`
	TotalLinesDeleted int `json:"total_lines_deleted"`

	// CommitFrequency spans every calendar day in the window, zero-filled
	// for days with no activity.
	CommitFrequency []DayCount `json:"commit_frequency"`

	CommitsByHour    [24]int `json:"commits_by_hour"`
	CommitsByWeekday [7]int  `json:"commits_by_weekday"` // Sunday = 0

	// TopLanguages holds at most 5 entries, descending by share.
	TopLanguages []LanguageShare `json:"top_languages"`

	// Derived rates; nil whenever the denominator is zero.
	AvgCommitSize         *float64 `json:"avg_commit_size,omitempty"`
	AvgPRSize             *float64 `json:"avg_pr_size,omitempty"`
	AvgTimeToMergePR      *float64 `json:"avg_time_to_merge_pr,omitempty"`      // hours
	AvgTimeToResolveIssue *float64 `json:"avg_time_to_resolve_issue,omitempty"` // hours

	// CodeQualityScore is a 0-100 hygiene heuristic.
	CodeQualityScore int `json:"code_quality_score"`
}

// TrendDirection classifies a period-over-period productivity change.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving" // change > +10%
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining" // change < -10%
)

// PeriodSummary is the lightweight productivity snapshot of one window.
type PeriodSummary struct {
	Window           Window  `json:"window"`
	CommitCount      int     `json:"commit_count"`
	PRCount          int     `json:"pr_count"`
	IssueCount       int     `json:"issue_count"`
	CodeQualityScore int     `json:"code_quality_score"`
	Score            float64 `json:"score"`
}

// ProductivityTrend compares the requested window against the window
// immediately preceding it.
type ProductivityTrend struct {
	UserID       string         `json:"user_id"`
	RepositoryID string         `json:"repository_id,omitempty"`
	Direction    TrendDirection `json:"direction"`

	// PercentChange is rounded to 1 decimal; 0 when the previous period
	// scored 0.
	PercentChange float64 `json:"percent_change"`

	Current  PeriodSummary `json:"current"`
	Previous PeriodSummary `json:"previous"`
}
