package burnout

import (
	"testing"

	"github.com/devpulse/devpulse/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeFactorsEmptyWindow(t *testing.T) {
	f := ComputeFactors(nil)

	if f != (Factors{}) {
		t.Errorf("expected all-zero factors for empty window, got %+v", f)
	}
}

func TestWorkHoursPatternLateNightRatio(t *testing.T) {
	// 4 of 10 commits late at night, mean hour inside working hours:
	// only the late-night term contributes.
	metrics := []model.DailyMetric{
		{Commits: 10, LateNightCommits: 4, AvgCommitHour: floatPtr(12)},
	}

	f := ComputeFactors(metrics)

	want := 0.7 * 0.4
	if diff := f.WorkHoursPattern - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected work hours %.4f, got %.4f", want, f.WorkHoursPattern)
	}
}

func TestWorkHoursPatternOffHoursPenalty(t *testing.T) {
	// Mean hour of 3am: penalty scales linearly toward the earliest hour,
	// (9-3)/9 of the 0.3 weight.
	metrics := []model.DailyMetric{
		{Commits: 5, AvgCommitHour: floatPtr(3)},
	}

	f := ComputeFactors(metrics)

	want := 0.3 * 6.0 / 9.0
	if diff := f.WorkHoursPattern - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected work hours %.4f, got %.4f", want, f.WorkHoursPattern)
	}

	// Mean hour of 21: (21-17)/7 of the 0.3 weight.
	f = ComputeFactors([]model.DailyMetric{{Commits: 5, AvgCommitHour: floatPtr(21)}})
	want = 0.3 * 4.0 / 7.0
	if diff := f.WorkHoursPattern - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected work hours %.4f, got %.4f", want, f.WorkHoursPattern)
	}
}

func TestCodeQualityTrendBands(t *testing.T) {
	cases := []struct {
		msgLen float64
		want   float64
	}{
		{5, 0.8},
		{15, 0.6},
		{35, 0.4},
		{80, 0.2},
		{150, 0.1},
	}

	for _, tc := range cases {
		f := ComputeFactors([]model.DailyMetric{
			{Commits: 1, AvgMessageLen: floatPtr(tc.msgLen)},
		})
		if f.CodeQualityTrend != tc.want {
			t.Errorf("msgLen %.0f: expected %.1f, got %.2f", tc.msgLen, tc.want, f.CodeQualityTrend)
		}
	}
}

func TestCollaborationLevel(t *testing.T) {
	// No reviews, no comments: maximal risk 0.6 + 0.4.
	f := ComputeFactors([]model.DailyMetric{{PRsOpened: 4}})
	if f.CollaborationLevel != 1.0 {
		t.Errorf("expected 1.0 for isolated work, got %.2f", f.CollaborationLevel)
	}

	// Reviews exceed opened PRs: the ratio term saturates at zero risk.
	f = ComputeFactors([]model.DailyMetric{{PRsOpened: 2, PRsReviewed: 5, ReviewComments: 12}})
	if f.CollaborationLevel != 0.05 {
		t.Errorf("expected 0.05 for heavy collaboration, got %.2f", f.CollaborationLevel)
	}

	// No PRs at all: no PR data means factor 0, not maximal risk.
	f = ComputeFactors([]model.DailyMetric{{Commits: 3}})
	if f.CollaborationLevel != 0 {
		t.Errorf("expected 0 without PR data, got %.2f", f.CollaborationLevel)
	}
}

func TestWorkloadDistributionBands(t *testing.T) {
	// Perfectly steady days: CV 0 lands in the lowest band.
	steady := []model.DailyMetric{{Commits: 3}, {Commits: 3}, {Commits: 3}}
	if f := ComputeFactors(steady); f.WorkloadDistribution != 0.2 {
		t.Errorf("expected 0.2 for steady workload, got %.2f", f.WorkloadDistribution)
	}

	// One huge spike among idle days: CV well above 2.
	spiky := []model.DailyMetric{
		{Commits: 0}, {Commits: 0}, {Commits: 0}, {Commits: 0},
		{Commits: 0}, {Commits: 0}, {Commits: 0}, {Commits: 0},
		{Commits: 0}, {Commits: 40},
	}
	if f := ComputeFactors(spiky); f.WorkloadDistribution != 1.0 {
		t.Errorf("expected 1.0 for spiky workload, got %.2f", f.WorkloadDistribution)
	}

	// All-zero commits: mean 0 yields factor 0.
	idle := []model.DailyMetric{{PRsOpened: 1}, {PRsOpened: 2}}
	if f := ComputeFactors(idle); f.WorkloadDistribution != 0 {
		t.Errorf("expected 0 without commits, got %.2f", f.WorkloadDistribution)
	}
}

func TestTimeToResolutionBands(t *testing.T) {
	cases := []struct {
		hours float64
		want  float64
	}{
		{100, 1.0},
		{60, 0.8},
		{30, 0.6},
		{18, 0.4},
		{8, 0.2},
		{2, 0.1},
	}

	for _, tc := range cases {
		f := ComputeFactors([]model.DailyMetric{
			{PRsOpened: 1, AvgReviewHours: floatPtr(tc.hours)},
		})
		if f.TimeToResolution != tc.want {
			t.Errorf("hours %.0f: expected %.1f, got %.2f", tc.hours, tc.want, f.TimeToResolution)
		}
	}
}

func TestWeekendWorkFrequencyBands(t *testing.T) {
	cases := []struct {
		weekend int
		total   int
		want    float64
	}{
		{6, 10, 1.0},
		{4, 10, 0.8},
		{25, 100, 0.6},
		{2, 10, 0.4},
		{1, 100, 0.2},
		{0, 10, 0},
	}

	for _, tc := range cases {
		f := ComputeFactors([]model.DailyMetric{
			{Commits: tc.total, WeekendCommits: tc.weekend},
		})
		if f.WeekendWorkFrequency != tc.want {
			t.Errorf("%d/%d weekend: expected %.1f, got %.2f", tc.weekend, tc.total, tc.want, f.WeekendWorkFrequency)
		}
	}
}

func TestFactorsAlwaysInUnitRange(t *testing.T) {
	// Extreme inputs must still clamp to [0,1].
	metrics := []model.DailyMetric{
		{
			Commits:          1,
			LateNightCommits: 1,
			WeekendCommits:   1,
			PRsOpened:        10,
			AvgCommitHour:    floatPtr(23.9),
			AvgMessageLen:    floatPtr(1),
			AvgReviewHours:   floatPtr(500),
		},
	}

	f := ComputeFactors(metrics)
	for name, v := range map[string]float64{
		FactorWorkHours:     f.WorkHoursPattern,
		FactorCodeQuality:   f.CodeQualityTrend,
		FactorCollaboration: f.CollaborationLevel,
		FactorWorkload:      f.WorkloadDistribution,
		FactorTimeToResolve: f.TimeToResolution,
		FactorWeekendWork:   f.WeekendWorkFrequency,
	} {
		if v < 0 || v > 1 {
			t.Errorf("factor %s out of range: %.4f", name, v)
		}
	}
}
