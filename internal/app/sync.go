package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devpulse/devpulse/internal/aggregator"
	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/output"
	"github.com/devpulse/devpulse/internal/source"
)

var (
	syncUser string
	syncRepo string
	syncFrom string
	syncTo   string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Aggregate GitHub events into daily metrics",
	Long: `Fetch a user's commits, pull requests, and issues from GitHub and
reduce them into one DailyMetric per calendar day. Days with no activity
still produce a zero-valued record, so downstream scorers can tell "idle
day" apart from "day never synced".

Re-syncing a day replaces its record; the operation is idempotent.`,
	Example: `  devpulse sync --user octocat --repo octocat/hello-world --from 2025-07-01 --to 2025-07-31`,
	RunE:    runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncUser, "user", "", "GitHub login to sync (required)")
	syncCmd.Flags().StringVar(&syncRepo, "repo", "", "Repository as owner/name (required)")
	syncCmd.Flags().StringVar(&syncFrom, "from", "", "Window start, YYYY-MM-DD")
	syncCmd.Flags().StringVar(&syncTo, "to", "", "Window end, YYYY-MM-DD (default: today)")
	_ = syncCmd.MarkFlagRequired("user")
	_ = syncCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	window, err := parseWindow(syncFrom, syncTo, cfg.WindowDays)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	gh := source.NewGitHubClient(cfg.GitHubToken)

	user, err := gh.ResolveUser(ctx, syncUser)
	if err != nil {
		return err
	}
	if err := db.UpsertUser(user); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}

	metrics, err := aggregateWindow(ctx, gh, user.ID, syncRepo, window, cfg.SyncWorkers)
	if err != nil {
		return err
	}

	var activeDays, totalCommits int
	for i := range metrics {
		if err := db.UpsertDailyMetric(&metrics[i]); err != nil {
			return fmt.Errorf("storing metric for %s: %w", metrics[i].Date.Format(windowLayout), err)
		}
		totalCommits += metrics[i].Commits
		if metrics[i].Commits > 0 || metrics[i].PRsOpened > 0 || metrics[i].IssuesCreated > 0 {
			activeDays++
		}
	}

	if flagJSON {
		return printJSON(map[string]any{
			"user":        user.ID,
			"repository":  syncRepo,
			"days":        len(metrics),
			"active_days": activeDays,
			"commits":     totalCommits,
		})
	}

	fmt.Println(output.Section(fmt.Sprintf("Synced %s in %s", user.ID, syncRepo)))
	fmt.Printf("%d days aggregated (%d active), %d commits\n", len(metrics), activeDays, totalCommits)
	return nil
}

// aggregateWindow runs the daily aggregator once per calendar day in the
// window, fetching each day's events concurrently. Results land in a
// per-day slot, so worker order never affects output order.
func aggregateWindow(ctx context.Context, src *source.GitHubClient, userID, repoID string, window model.Window, workers int) ([]model.DailyMetric, error) {
	start := model.DayStart(window.Start)
	days := window.Days()

	metrics := make([]model.DailyMetric, days)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < days; i++ {
		g.Go(func() error {
			dayStart := start.AddDate(0, 0, i)
			dayEnd := model.DayEnd(dayStart)

			batch, err := src.FetchEvents(ctx, userID, repoID, dayStart, dayEnd)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", dayStart.Format(windowLayout), err)
			}

			metrics[i] = aggregator.Aggregate(userID, repoID, dayStart, dayEnd, *batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}
