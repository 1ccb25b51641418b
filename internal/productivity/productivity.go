// Package productivity computes windowed productivity metrics and the
// code-quality heuristic from raw version-control events.
package productivity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// topLanguageLimit caps the language distribution length.
const topLanguageLimit = 5

// EventSource supplies time-bounded event batches for a user.
type EventSource interface {
	FetchEvents(ctx context.Context, userID, repositoryID string, start, end time.Time) (*model.EventBatch, error)
}

// UserResolver resolves subject identities. Unknown users yield
// model.ErrUserNotFound.
type UserResolver interface {
	GetUser(id string) (*model.User, error)
}

// Calculator computes productivity metrics for a user over a window.
type Calculator struct {
	source EventSource
	users  UserResolver
}

// NewCalculator creates a Calculator on the given collaborators.
func NewCalculator(source EventSource, users UserResolver) *Calculator {
	return &Calculator{source: source, users: users}
}

// Metrics computes productivity metrics for the user over the window. It
// fails fast when the subject user cannot be resolved; empty event data
// degrades to zero counts and nil rates instead of failing.
func (c *Calculator) Metrics(ctx context.Context, userID string, window model.Window, repositoryID string) (*model.ProductivityMetrics, error) {
	if _, err := c.users.GetUser(userID); err != nil {
		return nil, fmt.Errorf("resolving user %q: %w", userID, err)
	}

	batch, err := c.source.FetchEvents(ctx, userID, repositoryID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	m := Compute(userID, repositoryID, window, *batch)
	return &m, nil
}

// Compute derives productivity metrics from an already-fetched batch.
func Compute(userID, repositoryID string, window model.Window, batch model.EventBatch) model.ProductivityMetrics {
	m := model.ProductivityMetrics{
		UserID:       userID,
		RepositoryID: repositoryID,
		Window:       window,
		CommitCount:  len(batch.Commits),
		PRCount:      len(batch.PullRequests),
		IssueCount:   len(batch.Issues),
	}

	m.CommitFrequency = commitFrequency(window, batch.Commits)
	m.TopLanguages = topLanguages(batch.Commits)

	for _, c := range batch.Commits {
		m.TotalLinesAdded += c.LinesAdded
		m.TotalLinesDeleted += c.LinesDeleted
		m.CommitsByHour[c.AuthoredAt.Hour()]++
		m.CommitsByWeekday[int(c.AuthoredAt.Weekday())]++
	}

	m.AvgCommitSize = avgCommitSize(batch.Commits)
	m.AvgPRSize = avgPRSize(batch.PullRequests)
	m.AvgTimeToMergePR = avgMergeHours(batch.PullRequests)
	m.AvgTimeToResolveIssue = avgResolveHours(batch.Issues)
	m.CodeQualityScore = CodeQualityScore(batch.Commits, batch.PullRequests)

	return m
}

// commitFrequency builds the daily commit series: every calendar day in
// the window initialized to zero, then incremented per matching commit.
// The series length always equals the window's inclusive day count.
func commitFrequency(window model.Window, commits []model.Commit) []model.DayCount {
	start := model.DayStart(window.Start)
	days := window.Days()

	series := make([]model.DayCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		series[i] = model.DayCount{Date: date}
		index[date.Format("2006-01-02")] = i
	}

	for _, c := range commits {
		if i, ok := index[c.AuthoredAt.Format("2006-01-02")]; ok {
			series[i].Count++
		}
	}

	return series
}

// topLanguages groups commits by repository language and returns the top
// shares, descending, ties broken by first encounter. Commits without a
// language tag are excluded from both numerator and denominator.
func topLanguages(commits []model.Commit) []model.LanguageShare {
	counts := make(map[string]int)
	var order []string
	tagged := 0

	for _, c := range commits {
		if c.Language == "" {
			continue
		}
		if _, seen := counts[c.Language]; !seen {
			order = append(order, c.Language)
		}
		counts[c.Language]++
		tagged++
	}

	if tagged == 0 {
		return nil
	}

	shares := make([]model.LanguageShare, 0, len(order))
	for _, lang := range order {
		share := math.Round(float64(counts[lang])/float64(tagged)*100) / 100
		shares = append(shares, model.LanguageShare{Language: lang, Share: share})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Share > shares[j].Share
	})

	if len(shares) > topLanguageLimit {
		shares = shares[:topLanguageLimit]
	}
	return shares
}

func avgCommitSize(commits []model.Commit) *float64 {
	if len(commits) == 0 {
		return nil
	}
	var total int
	for _, c := range commits {
		total += c.LinesAdded + c.LinesDeleted
	}
	avg := float64(total) / float64(len(commits))
	return &avg
}

func avgPRSize(prs []model.PullRequest) *float64 {
	if len(prs) == 0 {
		return nil
	}
	var total int
	for _, pr := range prs {
		total += pr.LinesAdded + pr.LinesDeleted
	}
	avg := float64(total) / float64(len(prs))
	return &avg
}

// avgMergeHours averages time-to-merge over merged PRs only.
func avgMergeHours(prs []model.PullRequest) *float64 {
	var sum float64
	var n int
	for _, pr := range prs {
		if pr.MergedAt != nil {
			sum += pr.MergedAt.Sub(pr.CreatedAt).Hours()
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// avgResolveHours averages time-to-close over closed issues only.
func avgResolveHours(issues []model.Issue) *float64 {
	var sum float64
	var n int
	for _, is := range issues {
		if is.ClosedAt != nil {
			sum += is.ClosedAt.Sub(is.CreatedAt).Hours()
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
