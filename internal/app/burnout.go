package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devpulse/devpulse/internal/burnout"
	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/output"
)

var (
	burnoutUser string
	burnoutRepo string
	burnoutDays int
	burnoutSave bool
)

var burnoutCmd = &cobra.Command{
	Use:   "burnout",
	Short: "Assess burnout risk from stored daily metrics",
	Long: `Score burnout risk over the trailing window of stored daily metrics.
The assessment combines six weighted factors (working hours, commit
hygiene, collaboration, workload distribution, review latency, weekend
work) into a 0-100 score with a data-backed confidence value.

Run 'devpulse sync' first; the scorer reads stored metrics only.`,
	Example: `  devpulse burnout --user octocat --repo octocat/hello-world --days 30`,
	RunE:    runBurnout,
}

func init() {
	burnoutCmd.Flags().StringVar(&burnoutUser, "user", "", "GitHub login to assess (required)")
	burnoutCmd.Flags().StringVar(&burnoutRepo, "repo", "", "Restrict to one repository (owner/name)")
	burnoutCmd.Flags().IntVar(&burnoutDays, "days", 0, "Trailing window in days (default from config)")
	burnoutCmd.Flags().BoolVar(&burnoutSave, "save", true, "Store the assessment and back-fill today's risk score")
	_ = burnoutCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(burnoutCmd)
}

func runBurnout(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	days := burnoutDays
	if days <= 0 {
		days = cfg.WindowDays
	}

	assessor := burnout.NewAssessor(db)
	assessment, err := assessor.Assess(burnoutUser, burnoutRepo, days)
	if err != nil {
		return err
	}

	if burnoutSave {
		if err := db.RecordAssessment(assessment); err != nil {
			return fmt.Errorf("storing assessment: %w", err)
		}
		// Back-fill today's metric rows so future assessments see this
		// run in their historical trend.
		if err := db.RecordRiskScore(burnoutUser, burnoutRepo, model.DayStart(time.Now()), float64(assessment.Score)); err != nil {
			return fmt.Errorf("recording risk score: %w", err)
		}
	}

	if flagJSON {
		return printJSON(assessment)
	}

	renderAssessment(assessment)
	return nil
}

func renderAssessment(a *model.RiskAssessment) {
	fmt.Println(output.Section(fmt.Sprintf("Burnout Risk: %s (last %d days)", a.UserID, a.WindowDays)))
	fmt.Println()

	scoreStyle := output.RiskStyle(a.Score)
	fmt.Printf("%s %s  %s\n",
		output.StyleLabel.Render("Risk score"),
		scoreStyle.Render(fmt.Sprintf("%3d / 100", a.Score)),
		output.Bar(float64(a.Score), 100, 30),
	)
	fmt.Printf("%s %.0f%%\n", output.StyleLabel.Render("Confidence"), a.Confidence*100)
	fmt.Println()

	fmt.Println(output.Section("Key Factors"))
	tbl := output.NewTable("Factor", "Impact", "Assessment")
	for _, kf := range a.KeyFactors {
		tbl.AddRow(kf.Name, fmt.Sprintf("%.2f", kf.Impact), kf.Description)
	}
	tbl.Print()
	fmt.Println()

	fmt.Println(output.Section("Recommendations"))
	for i, rec := range a.Recommendations {
		fmt.Printf("%d. %s\n", i+1, rec)
	}

	if len(a.HistoricalTrend) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Score History"))
		for _, pt := range a.HistoricalTrend {
			fmt.Printf("%s  %s %s\n",
				pt.Date.Format(windowLayout),
				output.Bar(pt.Score, 100, 20),
				output.StyleMuted.Render(fmt.Sprintf("%.0f", pt.Score)),
			)
		}
	}
}
