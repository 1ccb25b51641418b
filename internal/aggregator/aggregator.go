// Package aggregator reduces raw version-control events into per-day
// DailyMetric records.
package aggregator

import (
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// Aggregate reduces one user's events for a single calendar day into a
// DailyMetric. The caller supplies the day boundaries and must invoke
// Aggregate once per calendar day, so zero-activity days still yield a
// zero-valued record.
//
// Aggregate never fails: empty input degrades to a record of zeros and
// nil averages.
func Aggregate(userID, repositoryID string, dayStart, dayEnd time.Time, batch model.EventBatch) model.DailyMetric {
	m := model.DailyMetric{
		UserID:       userID,
		RepositoryID: repositoryID,
		Date:         model.DayStart(dayStart),
	}

	if batch.Empty() {
		return m
	}

	aggregateCommits(&m, batch.Commits, dayStart, dayEnd)
	aggregatePullRequests(&m, userID, batch.PullRequests, dayStart, dayEnd)
	aggregateIssues(&m, batch.Issues, dayStart, dayEnd)

	return m
}

// inDay reports whether t falls inside [start, end], both inclusive.
func inDay(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func aggregateCommits(m *model.DailyMetric, commits []model.Commit, dayStart, dayEnd time.Time) {
	var hourSum, msgLenSum int

	for _, c := range commits {
		if !inDay(c.AuthoredAt, dayStart, dayEnd) {
			continue
		}

		m.Commits++
		m.LinesAdded += c.LinesAdded
		m.LinesDeleted += c.LinesDeleted
		hourSum += c.AuthoredAt.Hour()
		msgLenSum += len(c.Message)

		// Weekend and late-night classification use the commit's own
		// timestamp as stored on the event; no timezone conversion.
		if model.IsWeekend(c.AuthoredAt) {
			m.WeekendCommits++
		}
		if model.IsLateNight(c.AuthoredAt) {
			m.LateNightCommits++
		}
	}

	if m.Commits > 0 {
		n := float64(m.Commits)
		avgHour := float64(hourSum) / n
		avgLen := float64(msgLenSum) / n
		m.AvgCommitHour = &avgHour
		m.AvgMessageLen = &avgLen
	}
}

func aggregatePullRequests(m *model.DailyMetric, userID string, prs []model.PullRequest, dayStart, dayEnd time.Time) {
	var reviewHoursSum float64
	var mergedCount int

	for _, pr := range prs {
		if inDay(pr.CreatedAt, dayStart, dayEnd) {
			m.PRsOpened++
			m.ReviewComments += pr.ReviewComments

			// Review time counts PRs created within the day and merged at
			// any later point; unmerged PRs are excluded from the average.
			if pr.MergedAt != nil {
				reviewHoursSum += pr.MergedAt.Sub(pr.CreatedAt).Hours()
				mergedCount++
			}
		}

		if reviewedBy(pr, userID, dayStart, dayEnd) {
			m.PRsReviewed++
		}
	}

	if mergedCount > 0 {
		avg := reviewHoursSum / float64(mergedCount)
		m.AvgReviewHours = &avg
	}
}

// reviewedBy reports whether the user submitted at least one review on the
// pull request within the day.
func reviewedBy(pr model.PullRequest, userID string, dayStart, dayEnd time.Time) bool {
	for _, r := range pr.Reviews {
		if r.ReviewerID == userID && inDay(r.SubmittedAt, dayStart, dayEnd) {
			return true
		}
	}
	return false
}

func aggregateIssues(m *model.DailyMetric, issues []model.Issue, dayStart, dayEnd time.Time) {
	for _, is := range issues {
		if inDay(is.CreatedAt, dayStart, dayEnd) {
			m.IssuesCreated++
		}
		if is.ClosedAt != nil && inDay(*is.ClosedAt, dayStart, dayEnd) {
			m.IssuesResolved++
		}
	}
}
