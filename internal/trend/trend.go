// Package trend classifies period-over-period productivity changes.
package trend

import (
	"context"
	"math"

	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/productivity"
)

// Lightweight productivity score weights: each event kind contributes a
// fixed number of points, plus half the code-quality score.
const (
	pointsPerCommit = 1.0
	pointsPerPR     = 5.0
	pointsPerIssue  = 3.0
	qualityWeight   = 0.5
)

// Classification thresholds, in percent.
const (
	improvingAbove = 10.0
	decliningBelow = -10.0
)

// Detector compares a window against the window immediately preceding it.
type Detector struct {
	source productivity.EventSource
}

// NewDetector creates a Detector on the given event source.
func NewDetector(source productivity.EventSource) *Detector {
	return &Detector{source: source}
}

// Detect compares productivity across the window and its predecessor.
// It never fails: any fetch error collapses to a default stable trend
// with 0% change and zero-valued periods on both sides.
func (d *Detector) Detect(ctx context.Context, userID string, window model.Window, repositoryID string) model.ProductivityTrend {
	previous := window.Previous()

	current, err := d.summarize(ctx, userID, window, repositoryID)
	if err != nil {
		return defaultTrend(userID, repositoryID, window, previous)
	}

	prior, err := d.summarize(ctx, userID, previous, repositoryID)
	if err != nil {
		return defaultTrend(userID, repositoryID, window, previous)
	}

	change := percentChange(current.Score, prior.Score)

	return model.ProductivityTrend{
		UserID:        userID,
		RepositoryID:  repositoryID,
		Direction:     classify(change),
		PercentChange: change,
		Current:       current,
		Previous:      prior,
	}
}

func (d *Detector) summarize(ctx context.Context, userID string, window model.Window, repositoryID string) (model.PeriodSummary, error) {
	batch, err := d.source.FetchEvents(ctx, userID, repositoryID, window.Start, window.End)
	if err != nil {
		return model.PeriodSummary{}, err
	}
	return Summarize(window, *batch), nil
}

// Summarize computes the lightweight productivity score of one window
// from its raw event set.
func Summarize(window model.Window, batch model.EventBatch) model.PeriodSummary {
	quality := productivity.CodeQualityScore(batch.Commits, batch.PullRequests)

	score := float64(len(batch.Commits))*pointsPerCommit +
		float64(len(batch.PullRequests))*pointsPerPR +
		float64(len(batch.Issues))*pointsPerIssue +
		float64(quality)*qualityWeight

	return model.PeriodSummary{
		Window:           window,
		CommitCount:      len(batch.Commits),
		PRCount:          len(batch.PullRequests),
		IssueCount:       len(batch.Issues),
		CodeQualityScore: quality,
		Score:            score,
	}
}

// percentChange returns the period-over-period change rounded to one
// decimal. A previous score of 0 forces 0 rather than dividing by zero.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

func classify(change float64) model.TrendDirection {
	switch {
	case change > improvingAbove:
		return model.TrendImproving
	case change < decliningBelow:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func defaultTrend(userID, repositoryID string, window, previous model.Window) model.ProductivityTrend {
	return model.ProductivityTrend{
		UserID:        userID,
		RepositoryID:  repositoryID,
		Direction:     model.TrendStable,
		PercentChange: 0,
		Current:       model.PeriodSummary{Window: window},
		Previous:      model.PeriodSummary{Window: previous},
	}
}
