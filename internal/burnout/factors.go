// Package burnout implements the six-factor burnout risk model and the
// risk scorer that turns stored daily metrics into an assessment.
package burnout

import (
	"math"

	"github.com/devpulse/devpulse/internal/model"
)

// Factor names as reported in assessments.
const (
	FactorWorkHours     = "work_hours_pattern"
	FactorCodeQuality   = "code_quality_trend"
	FactorCollaboration = "collaboration_level"
	FactorWorkload      = "workload_distribution"
	FactorTimeToResolve = "time_to_resolution"
	FactorWeekendWork   = "weekend_work_frequency"
)

// Factors holds the six normalized risk factors, each in [0,1].
type Factors struct {
	WorkHoursPattern     float64 `json:"work_hours_pattern"`
	CodeQualityTrend     float64 `json:"code_quality_trend"`
	CollaborationLevel   float64 `json:"collaboration_level"`
	WorkloadDistribution float64 `json:"workload_distribution"`
	TimeToResolution     float64 `json:"time_to_resolution"`
	WeekendWorkFrequency float64 `json:"weekend_work_frequency"`
}

// ComputeFactors derives the six factors from a window of daily metrics.
// The formulas operate on sums and ratios across the whole window, not
// per-day. With no input data every factor is 0.
func ComputeFactors(metrics []model.DailyMetric) Factors {
	if len(metrics) == 0 {
		return Factors{}
	}

	t := newTotals(metrics)

	return Factors{
		WorkHoursPattern:     workHoursPattern(t),
		CodeQualityTrend:     codeQualityTrend(t),
		CollaborationLevel:   collaborationLevel(t),
		WorkloadDistribution: workloadDistribution(t),
		TimeToResolution:     timeToResolution(t),
		WeekendWorkFrequency: weekendWorkFrequency(t),
	}
}

// totals collects the window-wide sums and means the factor formulas need.
type totals struct {
	commits        int
	lateNight      int
	weekend        int
	prsOpened      int
	prsReviewed    int
	reviewComments int

	dailyCommits []float64

	meanCommitHour  *float64
	meanMessageLen  *float64
	meanReviewHours *float64
}

func newTotals(metrics []model.DailyMetric) totals {
	t := totals{dailyCommits: make([]float64, 0, len(metrics))}

	var hourSum, msgSum, reviewSum float64
	var hourN, msgN, reviewN int

	for _, m := range metrics {
		t.commits += m.Commits
		t.lateNight += m.LateNightCommits
		t.weekend += m.WeekendCommits
		t.prsOpened += m.PRsOpened
		t.prsReviewed += m.PRsReviewed
		t.reviewComments += m.ReviewComments
		t.dailyCommits = append(t.dailyCommits, float64(m.Commits))

		if m.AvgCommitHour != nil {
			hourSum += *m.AvgCommitHour
			hourN++
		}
		if m.AvgMessageLen != nil {
			msgSum += *m.AvgMessageLen
			msgN++
		}
		if m.AvgReviewHours != nil {
			reviewSum += *m.AvgReviewHours
			reviewN++
		}
	}

	if hourN > 0 {
		v := hourSum / float64(hourN)
		t.meanCommitHour = &v
	}
	if msgN > 0 {
		v := msgSum / float64(msgN)
		t.meanMessageLen = &v
	}
	if reviewN > 0 {
		v := reviewSum / float64(reviewN)
		t.meanReviewHours = &v
	}

	return t
}

// Core working hours used by the work-hours factor.
const (
	workdayStart = 9.0
	workdayEnd   = 17.0
)

// workHoursPattern blends the late-night commit ratio (70%) with a linear
// penalty for a mean commit hour outside 09:00-17:00 (up to 30%, maxing
// out toward midnight on either side).
func workHoursPattern(t totals) float64 {
	if t.commits == 0 {
		return 0
	}

	risk := 0.7 * (float64(t.lateNight) / float64(t.commits))

	if t.meanCommitHour != nil {
		h := *t.meanCommitHour
		switch {
		case h < workdayStart:
			risk += 0.3 * (workdayStart - h) / workdayStart
		case h > workdayEnd:
			risk += 0.3 * (h - workdayEnd) / (24.0 - workdayEnd)
		}
	}

	return clamp01(risk)
}

// codeQualityTrend maps the mean commit-message length to risk: shorter
// messages score higher.
func codeQualityTrend(t totals) float64 {
	if t.meanMessageLen == nil {
		return 0
	}

	switch l := *t.meanMessageLen; {
	case l < 10:
		return 0.8
	case l < 20:
		return 0.6
	case l < 50:
		return 0.4
	case l < 100:
		return 0.2
	default:
		return 0.1
	}
}

// collaborationLevel blends the review-to-open ratio (60%) with a banded
// penalty for sparse review comments per opened PR (up to 40%).
func collaborationLevel(t totals) float64 {
	if t.prsOpened == 0 {
		return 0
	}

	reviewRatio := math.Min(1, float64(t.prsReviewed)/float64(t.prsOpened))
	risk := 0.6 * (1 - reviewRatio)

	commentsPerPR := float64(t.reviewComments) / float64(t.prsOpened)
	switch {
	case commentsPerPR == 0:
		risk += 0.4
	case commentsPerPR < 1:
		risk += 0.3
	case commentsPerPR < 3:
		risk += 0.2
	case commentsPerPR < 5:
		risk += 0.1
	default:
		risk += 0.05
	}

	return clamp01(risk)
}

// workloadDistribution maps the coefficient of variation of daily commit
// counts to risk bands. Bursty weeks score higher than steady ones.
func workloadDistribution(t totals) float64 {
	mean := meanOf(t.dailyCommits)
	if mean == 0 {
		return 0
	}

	cv := stddevOf(t.dailyCommits, mean) / mean
	switch {
	case cv > 2.0:
		return 1.0
	case cv > 1.5:
		return 0.8
	case cv > 1.0:
		return 0.6
	case cv > 0.5:
		return 0.4
	default:
		return 0.2
	}
}

// timeToResolution maps mean PR review latency in hours to risk bands.
func timeToResolution(t totals) float64 {
	if t.meanReviewHours == nil {
		return 0
	}

	switch h := *t.meanReviewHours; {
	case h > 72:
		return 1.0
	case h > 48:
		return 0.8
	case h > 24:
		return 0.6
	case h > 12:
		return 0.4
	case h > 4:
		return 0.2
	default:
		return 0.1
	}
}

// weekendWorkFrequency maps the weekend-commit ratio to risk bands.
func weekendWorkFrequency(t totals) float64 {
	if t.commits == 0 {
		return 0
	}

	switch ratio := float64(t.weekend) / float64(t.commits); {
	case ratio > 0.5:
		return 1.0
	case ratio > 0.3:
		return 0.8
	case ratio > 0.2:
		return 0.6
	case ratio > 0.1:
		return 0.4
	case ratio > 0:
		return 0.2
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
