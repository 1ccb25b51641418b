package burnout

import (
	"errors"
	"testing"
	"time"

	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/store"
)

// fakeMetricSource implements MetricSource with canned data. failOn makes
// the n-th call (1-based) return an error; 0 never fails. The bounds of
// the last query are kept for inspection.
type fakeMetricSource struct {
	metrics []model.DailyMetric
	calls   int
	failOn  int

	start, end time.Time
}

func (f *fakeMetricSource) DailyMetrics(userID, repositoryID string, start, end time.Time) ([]model.DailyMetric, error) {
	f.calls++
	f.start, f.end = start, end
	if f.failOn != 0 && f.calls == f.failOn {
		return nil, errors.New("store unavailable")
	}
	return f.metrics, nil
}

func TestScoreBounds(t *testing.T) {
	if got := Score(Factors{}); got != 0 {
		t.Errorf("all-zero factors: expected score 0, got %d", got)
	}

	allOne := Factors{1, 1, 1, 1, 1, 1}
	if got := Score(allOne); got != 100 {
		t.Errorf("all-one factors: expected score 100, got %d", got)
	}
}

func TestScoreMonotonicPerFactor(t *testing.T) {
	base := Factors{0.3, 0.3, 0.3, 0.3, 0.3, 0.3}
	baseScore := Score(base)

	bump := func(f Factors, i int) Factors {
		switch i {
		case 0:
			f.WorkHoursPattern = 0.9
		case 1:
			f.CodeQualityTrend = 0.9
		case 2:
			f.CollaborationLevel = 0.9
		case 3:
			f.WorkloadDistribution = 0.9
		case 4:
			f.TimeToResolution = 0.9
		case 5:
			f.WeekendWorkFrequency = 0.9
		}
		return f
	}

	for i := 0; i < 6; i++ {
		got := Score(bump(base, i))
		if got < baseScore {
			t.Errorf("raising factor %d lowered the score: %d -> %d", i, baseScore, got)
		}
		if got < 0 || got > 100 {
			t.Errorf("score out of range: %d", got)
		}
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(nil); got != 0 {
		t.Errorf("empty window: expected confidence 0, got %.2f", got)
	}

	full := model.DailyMetric{
		Commits:       3,
		PRsOpened:     1,
		IssuesCreated: 1,
		AvgCommitHour: floatPtr(11),
	}

	// 14+ days with all categories present saturates at 1.0.
	var twoWeeks []model.DailyMetric
	for i := 0; i < 14; i++ {
		twoWeeks = append(twoWeeks, full)
	}
	if got := Confidence(twoWeeks); got != 1.0 {
		t.Errorf("full data: expected confidence 1.0, got %.2f", got)
	}

	// 7 days halves the volume factor.
	if got := Confidence(twoWeeks[:7]); got != 0.5 {
		t.Errorf("half volume: expected 0.5, got %.2f", got)
	}

	// Commits only, full volume: just the 0.3 increment.
	commitsOnly := make([]model.DailyMetric, 14)
	for i := range commitsOnly {
		commitsOnly[i] = model.DailyMetric{Commits: 1}
	}
	if got := Confidence(commitsOnly); got != 0.3 {
		t.Errorf("commits only: expected 0.3, got %.2f", got)
	}
}

func TestKeyFactorsTopThree(t *testing.T) {
	f := Factors{
		WorkHoursPattern:     0.9,
		CodeQualityTrend:     0.1,
		CollaborationLevel:   0.55,
		WorkloadDistribution: 0.2,
		TimeToResolution:     0.8,
		WeekendWorkFrequency: 0.05,
	}

	top := KeyFactors(f)
	if len(top) != 3 {
		t.Fatalf("expected 3 key factors, got %d", len(top))
	}
	if top[0].Name != FactorWorkHours || top[1].Name != FactorTimeToResolve || top[2].Name != FactorCollaboration {
		t.Errorf("unexpected ranking: %s, %s, %s", top[0].Name, top[1].Name, top[2].Name)
	}
	for _, kf := range top {
		if kf.Description == "" {
			t.Errorf("factor %s has no description", kf.Name)
		}
	}
}

func TestAssessEmptyWindow(t *testing.T) {
	a := NewAssessor(&fakeMetricSource{})

	got, err := a.Assess("u1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 0 {
		t.Errorf("expected score 0, got %d", got.Score)
	}
	if got.Confidence != 0 {
		t.Errorf("expected confidence 0, got %.2f", got.Confidence)
	}
	if len(got.HistoricalTrend) != 0 {
		t.Errorf("expected empty historical trend, got %d points", len(got.HistoricalTrend))
	}
	if len(got.Recommendations) < 3 || len(got.Recommendations) > 5 {
		t.Errorf("expected 3-5 recommendations, got %d", len(got.Recommendations))
	}
}

func TestAssessPropagatesStoreErrors(t *testing.T) {
	a := NewAssessor(&fakeMetricSource{failOn: 1})

	if _, err := a.Assess("u1", "", 30); err == nil {
		t.Fatal("expected a store error from the main path")
	}
}

func TestAssessTrendSwallowsStoreErrors(t *testing.T) {
	// First call (main fetch) succeeds, second call (trend) fails:
	// the assessment still comes back, with an empty trend.
	src := &fakeMetricSource{
		metrics: []model.DailyMetric{{Commits: 5, AvgCommitHour: floatPtr(14)}},
		failOn:  2,
	}
	a := NewAssessor(src)

	got, err := a.Assess("u1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.HistoricalTrend) != 0 {
		t.Errorf("expected empty trend after store failure, got %d points", len(got.HistoricalTrend))
	}
}

func TestAssessHistoricalTrendIsSparse(t *testing.T) {
	d1 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	score := 45.0

	src := &fakeMetricSource{metrics: []model.DailyMetric{
		{Date: d1, Commits: 2, BurnoutScore: &score},
		{Date: d2, Commits: 1}, // never assessed; omitted from the trend
		{Date: d3, Commits: 3, BurnoutScore: &score},
	}}
	a := NewAssessor(src)

	got, err := a.Assess("u1", "r1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.HistoricalTrend) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(got.HistoricalTrend))
	}
	if !got.HistoricalTrend[0].Date.Equal(d1) || !got.HistoricalTrend[1].Date.Equal(d3) {
		t.Errorf("trend not in ascending date order: %+v", got.HistoricalTrend)
	}
}

func TestAssessWindowSpansRequestedDays(t *testing.T) {
	src := &fakeMetricSource{}
	a := NewAssessor(src)
	a.now = func() time.Time { return time.Date(2025, 7, 20, 15, 30, 0, 0, time.UTC) }

	if _, err := a.Assess("u1", "", 14); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := model.Window{Start: src.start, End: src.end}
	if w.Days() != 14 {
		t.Errorf("expected a 14-day window, got %d days (%s to %s)", w.Days(), src.start, src.end)
	}
	if !src.start.Equal(time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start %s", src.start)
	}
}

func TestAssessAcrossRepositoriesMergesDays(t *testing.T) {
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

	// A steady 4 commits every day for 10 days, alternating between two
	// repositories. Each sync writes a row per repository per day, so the
	// idle repository contributes a zero row alongside the active one.
	for i := 0; i < 10; i++ {
		date := model.DayStart(now).AddDate(0, 0, -i)
		active, idle := "org/api", "org/web"
		if i%2 == 1 {
			active, idle = idle, active
		}
		hour := 11.0
		if err := db.UpsertDailyMetric(&model.DailyMetric{
			UserID: "u1", RepositoryID: active, Date: date,
			Commits: 4, AvgCommitHour: &hour,
		}); err != nil {
			t.Fatalf("upserting metric: %v", err)
		}
		if err := db.UpsertDailyMetric(&model.DailyMetric{
			UserID: "u1", RepositoryID: idle, Date: date,
		}); err != nil {
			t.Fatalf("upserting metric: %v", err)
		}
	}

	a := NewAssessor(db)
	a.now = func() time.Time { return now }

	got, err := a.Assess("u1", "", 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Steady daily volume must read as steady: 4 commits per day has zero
	// variation, which is the lowest workload band. Unmerged repository
	// rows would alternate 4 and 0 instead.
	metrics, err := db.DailyMetrics("u1", "", model.DayStart(now).AddDate(0, 0, -13), now)
	if err != nil {
		t.Fatalf("fetching metrics: %v", err)
	}
	if len(metrics) != 10 {
		t.Fatalf("expected 10 merged rows, got %d", len(metrics))
	}
	f := ComputeFactors(metrics)
	if f.WorkloadDistribution != 0.2 {
		t.Errorf("expected workload distribution 0.2, got %.2f", f.WorkloadDistribution)
	}

	// Confidence volume counts days, not rows: commits and timing present
	// (0.5), scaled by 10 of 14 days.
	want := 0.5 * 10.0 / 14.0
	if diff := got.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected confidence %.4f, got %.4f", want, got.Confidence)
	}
}

func TestAssessDefaultWindow(t *testing.T) {
	src := &fakeMetricSource{}
	a := NewAssessor(src)

	got, err := a.Assess("u1", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WindowDays != DefaultWindowDays {
		t.Errorf("expected default window of %d days, got %d", DefaultWindowDays, got.WindowDays)
	}
}
