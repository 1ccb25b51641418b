package burnout

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// DefaultWindowDays is the trailing window used when the caller does not
// specify one.
const DefaultWindowDays = 30

// Factor weights. Empirically tuned; kept as-is for behavioral
// compatibility with historical assessments. They sum to 1.0.
const (
	weightWorkHours     = 0.25
	weightCodeQuality   = 0.15
	weightCollaboration = 0.15
	weightWorkload      = 0.20
	weightTimeToResolve = 0.10
	weightWeekendWork   = 0.15
)

// confidenceFullDataDays is the number of days of data at which the
// confidence volume factor saturates.
const confidenceFullDataDays = 14

// MetricSource is the slice of the metric store the scorer reads from.
// Implementations return at most one row per calendar day, ascending;
// the store merges per-repository rows before they reach the scorer.
type MetricSource interface {
	DailyMetrics(userID, repositoryID string, start, end time.Time) ([]model.DailyMetric, error)
}

// Assessor computes burnout risk assessments from stored daily metrics.
type Assessor struct {
	metrics MetricSource
	now     func() time.Time
}

// NewAssessor creates an Assessor reading from the given metric source.
func NewAssessor(metrics MetricSource) *Assessor {
	return &Assessor{metrics: metrics, now: time.Now}
}

// Assess computes the burnout risk assessment for a user over the trailing
// windowDays-day window. An empty repositoryID spans all repositories; a
// non-positive windowDays falls back to DefaultWindowDays.
//
// Store failures on the main path propagate to the caller. The historical
// trend is the one exception: it degrades to an empty sequence.
func (a *Assessor) Assess(userID, repositoryID string, windowDays int) (*model.RiskAssessment, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	w := model.TrailingWindow(a.now(), windowDays)

	metrics, err := a.metrics.DailyMetrics(userID, repositoryID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("fetching daily metrics: %w", err)
	}

	factors := ComputeFactors(metrics)
	score := Score(factors)

	return &model.RiskAssessment{
		UserID:          userID,
		RepositoryID:    repositoryID,
		WindowDays:      windowDays,
		Score:           score,
		Confidence:      Confidence(metrics),
		KeyFactors:      KeyFactors(factors),
		Recommendations: Recommend(score, factors),
		HistoricalTrend: a.historicalTrend(userID, repositoryID, w.Start, w.End),
	}, nil
}

// Score combines the six factors into a 0-100 risk score via the fixed
// weighted sum, rounded to the nearest integer.
func Score(f Factors) int {
	weighted := f.WorkHoursPattern*weightWorkHours +
		f.CodeQualityTrend*weightCodeQuality +
		f.CollaborationLevel*weightCollaboration +
		f.WorkloadDistribution*weightWorkload +
		f.TimeToResolution*weightTimeToResolve +
		f.WeekendWorkFrequency*weightWeekendWork

	score := int(math.Round(weighted * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Confidence scores how much data backs an assessment, in [0,1]. Fixed
// increments for each data category present, scaled by a volume factor
// that saturates at two weeks of data. An empty window yields 0.
func Confidence(metrics []model.DailyMetric) float64 {
	if len(metrics) == 0 {
		return 0
	}

	var hasCommits, hasPRs, hasIssues, hasTiming bool
	for _, m := range metrics {
		if m.Commits > 0 {
			hasCommits = true
		}
		if m.PRsOpened > 0 || m.PRsReviewed > 0 {
			hasPRs = true
		}
		if m.IssuesCreated > 0 || m.IssuesResolved > 0 {
			hasIssues = true
		}
		if m.AvgCommitHour != nil || m.AvgReviewHours != nil {
			hasTiming = true
		}
	}

	var completeness float64
	if hasCommits {
		completeness += 0.3
	}
	if hasPRs {
		completeness += 0.3
	}
	if hasIssues {
		completeness += 0.2
	}
	if hasTiming {
		completeness += 0.2
	}

	volume := math.Min(1, float64(len(metrics))/confidenceFullDataDays)
	return completeness * volume
}

// KeyFactors returns the top 3 factors by impact, highest first, each with
// a banded human-readable description. Impacts are rounded to 2 decimals.
func KeyFactors(f Factors) []model.KeyFactor {
	all := []model.KeyFactor{
		{Name: FactorWorkHours, Impact: f.WorkHoursPattern},
		{Name: FactorCodeQuality, Impact: f.CodeQualityTrend},
		{Name: FactorCollaboration, Impact: f.CollaborationLevel},
		{Name: FactorWorkload, Impact: f.WorkloadDistribution},
		{Name: FactorTimeToResolve, Impact: f.TimeToResolution},
		{Name: FactorWeekendWork, Impact: f.WeekendWorkFrequency},
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Impact > all[j].Impact
	})

	top := all[:3]
	for i := range top {
		top[i].Description = describeFactor(top[i].Name, top[i].Impact)
		top[i].Impact = math.Round(top[i].Impact*100) / 100
	}
	return top
}

// factorDescriptions holds the five severity bands per factor, from the
// highest band down. Band thresholds: >=0.8, >=0.6, >=0.4, >=0.2, below.
var factorDescriptions = map[string][5]string{
	FactorWorkHours: {
		"Commits are concentrated late at night; working hours look unsustainable",
		"A large share of commits lands outside normal working hours",
		"Some commits regularly fall outside the 9-to-5 band",
		"Working hours are mostly regular with occasional late commits",
		"Working hours look healthy",
	},
	FactorCodeQuality: {
		"Commit messages are nearly empty, a common sign of rushing",
		"Commit messages are very short and losing detail",
		"Commit messages are below the length seen in careful work",
		"Commit messages are reasonably descriptive",
		"Commit messages are detailed and consistent",
	},
	FactorCollaboration: {
		"Almost no code review activity; work is happening in isolation",
		"Review participation is well below the PRs being opened",
		"Review activity is lagging behind authored work",
		"Collaboration is present but could be more balanced",
		"Healthy balance of authoring and reviewing",
	},
	FactorWorkload: {
		"Commit volume swings wildly between idle days and heavy spikes",
		"Workload is highly uneven across the window",
		"Workload shows noticeable bursts and gaps",
		"Workload is mostly steady with minor variation",
		"Workload is evenly distributed",
	},
	FactorTimeToResolve: {
		"Pull requests wait multiple days before merging",
		"PR review turnaround regularly exceeds two days",
		"PR review turnaround regularly exceeds a day",
		"PR review turnaround is within a working day",
		"Pull requests merge quickly",
	},
	FactorWeekendWork: {
		"Most commits land on weekends",
		"Weekend commits make up a large share of activity",
		"Weekend work happens regularly",
		"Occasional weekend commits",
		"Weekends are mostly protected",
	},
}

func describeFactor(name string, impact float64) string {
	bands, ok := factorDescriptions[name]
	if !ok {
		return ""
	}
	switch {
	case impact >= 0.8:
		return bands[0]
	case impact >= 0.6:
		return bands[1]
	case impact >= 0.4:
		return bands[2]
	case impact >= 0.2:
		return bands[3]
	default:
		return bands[4]
	}
}

// historicalTrend projects previously stored risk scores in the window to
// (date, score) points, ascending by date. Days never assessed are
// omitted rather than recomputed, so the trend can be sparse. Store
// failures here degrade to an empty trend instead of failing the whole
// assessment.
func (a *Assessor) historicalTrend(userID, repositoryID string, start, end time.Time) []model.ScorePoint {
	metrics, err := a.metrics.DailyMetrics(userID, repositoryID, start, end)
	if err != nil {
		return nil
	}

	var points []model.ScorePoint
	for _, m := range metrics {
		if m.BurnoutScore != nil {
			points = append(points, model.ScorePoint{Date: m.Date, Score: *m.BurnoutScore})
		}
	}
	return points
}
