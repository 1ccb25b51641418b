package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/output"
	"github.com/devpulse/devpulse/internal/source"
	"github.com/devpulse/devpulse/internal/trend"
)

var (
	trendUser string
	trendRepo string
	trendFrom string
	trendTo   string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare productivity against the previous period",
	Long: `Compare the window's productivity against the window of identical
length immediately preceding it, and classify the change as improving,
stable, or declining (±10% band).`,
	Example: `  devpulse trend --user octocat --repo octocat/hello-world --from 2025-07-01 --to 2025-07-31`,
	RunE:    runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendUser, "user", "", "GitHub login (required)")
	trendCmd.Flags().StringVar(&trendRepo, "repo", "", "Repository as owner/name (required)")
	trendCmd.Flags().StringVar(&trendFrom, "from", "", "Window start, YYYY-MM-DD")
	trendCmd.Flags().StringVar(&trendTo, "to", "", "Window end, YYYY-MM-DD (default: today)")
	_ = trendCmd.MarkFlagRequired("user")
	_ = trendCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	window, err := parseWindow(trendFrom, trendTo, cfg.WindowDays)
	if err != nil {
		return err
	}

	gh := source.NewGitHubClient(cfg.GitHubToken)
	detector := trend.NewDetector(gh)

	result := detector.Detect(cmd.Context(), trendUser, window, trendRepo)

	if flagJSON {
		return printJSON(result)
	}

	renderTrend(result)
	return nil
}

func renderTrend(t model.ProductivityTrend) {
	fmt.Println(output.Section(fmt.Sprintf("Productivity Trend: %s", t.UserID)))
	fmt.Println()

	style := output.StyleMuted
	arrow := "→"
	switch t.Direction {
	case model.TrendImproving:
		style, arrow = output.StyleSuccess, "↑"
	case model.TrendDeclining:
		style, arrow = output.StyleError, "↓"
	}

	fmt.Printf("%s %s\n",
		output.StyleLabel.Render("Direction"),
		style.Render(fmt.Sprintf("%s %s (%+.1f%%)", arrow, t.Direction, t.PercentChange)),
	)
	fmt.Println()

	tbl := output.NewTable("Period", "Commits", "PRs", "Issues", "Quality", "Score")
	for _, p := range []struct {
		name    string
		summary model.PeriodSummary
	}{
		{"current", t.Current},
		{"previous", t.Previous},
	} {
		tbl.AddRow(
			fmt.Sprintf("%s (%s to %s)", p.name,
				p.summary.Window.Start.Format(windowLayout),
				p.summary.Window.End.Format(windowLayout)),
			fmt.Sprintf("%d", p.summary.CommitCount),
			fmt.Sprintf("%d", p.summary.PRCount),
			fmt.Sprintf("%d", p.summary.IssueCount),
			fmt.Sprintf("%d", p.summary.CodeQualityScore),
			fmt.Sprintf("%.1f", p.summary.Score),
		)
	}
	tbl.Print()
}
