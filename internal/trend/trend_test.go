package trend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devpulse/devpulse/internal/model"
)

// windowedSource returns a different batch depending on whether the fetch
// covers the current or the previous window.
type windowedSource struct {
	windowStart time.Time
	current     model.EventBatch
	previous    model.EventBatch
	failCurrent bool
	failPrior   bool
}

func (s *windowedSource) FetchEvents(ctx context.Context, userID, repositoryID string, start, end time.Time) (*model.EventBatch, error) {
	if start.Equal(s.windowStart) || start.After(s.windowStart) {
		if s.failCurrent {
			return nil, errors.New("fetch failed")
		}
		return &s.current, nil
	}
	if s.failPrior {
		return nil, errors.New("fetch failed")
	}
	return &s.previous, nil
}

func testWindow() model.Window {
	return model.Window{
		Start: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 14, 23, 59, 59, 0, time.UTC),
	}
}

func commits(n int) []model.Commit {
	out := make([]model.Commit, n)
	for i := range out {
		out[i] = model.Commit{
			AuthoredAt: time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC),
			Message:    "add coverage for window arithmetic",
		}
	}
	return out
}

func TestDetectImproving(t *testing.T) {
	window := testWindow()
	src := &windowedSource{
		windowStart: window.Start,
		current:     model.EventBatch{Commits: commits(20), PullRequests: make([]model.PullRequest, 4)},
		previous:    model.EventBatch{Commits: commits(2)},
	}

	got := NewDetector(src).Detect(context.Background(), "u1", window, "")

	if got.Direction != model.TrendImproving {
		t.Errorf("expected improving, got %s (change %.1f%%)", got.Direction, got.PercentChange)
	}
	if got.PercentChange <= 10 {
		t.Errorf("expected change above 10%%, got %.1f", got.PercentChange)
	}
	if got.Current.CommitCount != 20 || got.Previous.CommitCount != 2 {
		t.Errorf("period snapshots wrong: current=%d previous=%d", got.Current.CommitCount, got.Previous.CommitCount)
	}
}

func TestDetectStableWithinBand(t *testing.T) {
	window := testWindow()
	src := &windowedSource{
		windowStart: window.Start,
		current:     model.EventBatch{Commits: commits(10)},
		previous:    model.EventBatch{Commits: commits(10)},
	}

	got := NewDetector(src).Detect(context.Background(), "u1", window, "")

	if got.Direction != model.TrendStable {
		t.Errorf("expected stable, got %s", got.Direction)
	}
	if got.PercentChange != 0 {
		t.Errorf("expected 0%% change, got %.1f", got.PercentChange)
	}
}

func TestDetectDeclining(t *testing.T) {
	window := testWindow()
	src := &windowedSource{
		windowStart: window.Start,
		current:     model.EventBatch{Commits: commits(1)},
		previous:    model.EventBatch{Commits: commits(30), Issues: make([]model.Issue, 5)},
	}

	got := NewDetector(src).Detect(context.Background(), "u1", window, "")

	if got.Direction != model.TrendDeclining {
		t.Errorf("expected declining, got %s (change %.1f%%)", got.Direction, got.PercentChange)
	}
}

func TestPercentChangeZeroPrevious(t *testing.T) {
	// A zero previous score forces 0% rather than +Inf.
	if got := percentChange(42, 0); got != 0 {
		t.Errorf("expected 0, got %.1f", got)
	}
}

func TestPercentChangeRounding(t *testing.T) {
	if got := percentChange(3, 1); got != 200.0 {
		t.Errorf("expected 200.0, got %.1f", got)
	}
	if got := percentChange(1, 3); got != -66.7 {
		t.Errorf("expected -66.7, got %.1f", got)
	}
}

func TestDetectNeverPropagatesErrors(t *testing.T) {
	window := testWindow()

	for _, src := range []*windowedSource{
		{windowStart: window.Start, failCurrent: true},
		{windowStart: window.Start, failPrior: true, current: model.EventBatch{Commits: commits(5)}},
	} {
		got := NewDetector(src).Detect(context.Background(), "u1", window, "")

		if got.Direction != model.TrendStable {
			t.Errorf("expected stable fallback, got %s", got.Direction)
		}
		if got.PercentChange != 0 {
			t.Errorf("expected 0%% fallback, got %.1f", got.PercentChange)
		}
		if got.Current.Score != 0 || got.Previous.Score != 0 {
			t.Errorf("expected zero-valued periods, got %+v", got)
		}
	}
}
