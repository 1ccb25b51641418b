package productivity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devpulse/devpulse/internal/model"
)

func weekdayCommit(msg string, added, deleted int) model.Commit {
	// Tuesday 2025-07-01, mid-afternoon.
	return model.Commit{
		AuthoredAt:   time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC),
		Message:      msg,
		LinesAdded:   added,
		LinesDeleted: deleted,
	}
}

func TestCodeQualityScoreNeutralBaseline(t *testing.T) {
	assert.Equal(t, 50, CodeQualityScore(nil, nil))
}

func TestCodeQualityScoreRewardsHygiene(t *testing.T) {
	long := strings.Repeat("describe the change thoroughly ", 4) // >100 chars

	commits := []model.Commit{
		weekdayCommit(long, 20, 10), // avg size 30 < 50
	}
	prs := []model.PullRequest{
		{ReviewComments: 7}, // avg > 5
	}

	// 50 +15 (message length) +10 (small commits) +10 (review activity)
	assert.Equal(t, 85, CodeQualityScore(commits, prs))
}

func TestCodeQualityScorePenalizesBadHabits(t *testing.T) {
	commits := []model.Commit{
		// Terse message, huge diff, weekend timestamp (Saturday).
		{
			AuthoredAt:   time.Date(2025, 7, 5, 11, 0, 0, 0, time.UTC),
			Message:      "wip",
			LinesAdded:   400,
			LinesDeleted: 50,
		},
	}
	prs := []model.PullRequest{
		{ReviewComments: 0}, // avg < 1
	}

	// 50 -10 (message) -10 (size) -10 (weekend ratio) -5 (no reviews)
	assert.Equal(t, 15, CodeQualityScore(commits, prs))
}

func TestCodeQualityScoreClampsToRange(t *testing.T) {
	var awful []model.Commit
	for i := 0; i < 10; i++ {
		awful = append(awful, model.Commit{
			AuthoredAt: time.Date(2025, 7, 5, 11, 0, 0, 0, time.UTC), // all weekend
			Message:    "x",
			LinesAdded: 1000,
		})
	}

	got := CodeQualityScore(awful, []model.PullRequest{{ReviewComments: 0}})
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 100)
	assert.Equal(t, 15, got) // 50 -10 -10 -10 -5
}

func TestCodeQualityScoreSkipsZeroDenominators(t *testing.T) {
	// PR adjustments are skipped entirely when there are no PRs.
	commits := []model.Commit{weekdayCommit("a sufficiently descriptive message here", 10, 5)}

	// 50 +5 (message >20) +10 (small size); no PR or weekend adjustment.
	assert.Equal(t, 65, CodeQualityScore(commits, nil))
}
