package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/output"
	"github.com/devpulse/devpulse/internal/productivity"
	"github.com/devpulse/devpulse/internal/source"
)

var (
	prodUser string
	prodRepo string
	prodFrom string
	prodTo   string
)

var productivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Compute productivity metrics for a window",
	Long: `Compute windowed productivity metrics from raw GitHub events: commit
frequency, hour-of-day and weekday distributions, top languages, derived
rates, and a 0-100 code-quality score.

The subject must have been synced at least once ('devpulse sync') so the
user identity resolves.`,
	Example: `  devpulse productivity --user octocat --repo octocat/hello-world --from 2025-07-01 --to 2025-07-31`,
	RunE:    runProductivity,
}

func init() {
	productivityCmd.Flags().StringVar(&prodUser, "user", "", "GitHub login (required)")
	productivityCmd.Flags().StringVar(&prodRepo, "repo", "", "Repository as owner/name (required)")
	productivityCmd.Flags().StringVar(&prodFrom, "from", "", "Window start, YYYY-MM-DD")
	productivityCmd.Flags().StringVar(&prodTo, "to", "", "Window end, YYYY-MM-DD (default: today)")
	_ = productivityCmd.MarkFlagRequired("user")
	_ = productivityCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(productivityCmd)
}

func runProductivity(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	window, err := parseWindow(prodFrom, prodTo, cfg.WindowDays)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	gh := source.NewGitHubClient(cfg.GitHubToken)
	calc := productivity.NewCalculator(gh, db)

	metrics, err := calc.Metrics(cmd.Context(), prodUser, window, prodRepo)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(metrics)
	}

	renderProductivity(metrics)
	return nil
}

func renderProductivity(m *model.ProductivityMetrics) {
	fmt.Println(output.Section(fmt.Sprintf("Productivity: %s (%s to %s)",
		m.UserID, m.Window.Start.Format(windowLayout), m.Window.End.Format(windowLayout))))
	fmt.Println()

	tbl := output.NewTable("Metric", "Value")
	tbl.AddRow("Commits", fmt.Sprintf("%d", m.CommitCount))
	tbl.AddRow("Pull requests", fmt.Sprintf("%d", m.PRCount))
	tbl.AddRow("Issues", fmt.Sprintf("%d", m.IssueCount))
	tbl.AddRow("Lines added", fmt.Sprintf("%d", m.TotalLinesAdded))
	tbl.AddRow("Lines deleted", fmt.Sprintf("%d", m.TotalLinesDeleted))
	tbl.AddRow("Avg commit size", formatRate(m.AvgCommitSize, "lines"))
	tbl.AddRow("Avg PR size", formatRate(m.AvgPRSize, "lines"))
	tbl.AddRow("Avg time to merge", formatRate(m.AvgTimeToMergePR, "h"))
	tbl.AddRow("Avg time to resolve", formatRate(m.AvgTimeToResolveIssue, "h"))
	tbl.Print()
	fmt.Println()

	qs := output.QualityStyle(m.CodeQualityScore)
	fmt.Printf("%s %s  %s\n",
		output.StyleLabel.Render("Code quality"),
		qs.Render(fmt.Sprintf("%3d / 100", m.CodeQualityScore)),
		output.Bar(float64(m.CodeQualityScore), 100, 30),
	)

	if len(m.TopLanguages) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Top Languages"))
		for _, ls := range m.TopLanguages {
			fmt.Printf("%-14s %5.0f%%  %s\n", ls.Language, ls.Share*100, output.Bar(ls.Share, 1, 20))
		}
	}

	fmt.Println()
	fmt.Println(output.Section("Daily Commits"))
	maxCount := 0
	for _, dc := range m.CommitFrequency {
		if dc.Count > maxCount {
			maxCount = dc.Count
		}
	}
	if maxCount == 0 {
		fmt.Println(output.StyleMuted.Render("no commits in window"))
		return
	}
	for _, dc := range m.CommitFrequency {
		fmt.Printf("%s  %s %d\n", dc.Date.Format(windowLayout), output.Bar(float64(dc.Count), float64(maxCount), 20), dc.Count)
	}
}

// formatRate renders a nullable rate; nil means no data, not zero.
func formatRate(v *float64, unit string) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f %s", *v, unit)
}
