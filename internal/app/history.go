package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devpulse/devpulse/internal/output"
)

var (
	historyUser  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored burnout assessments",
	Long: `List past burnout assessments for a user, most recent first. Each
'devpulse burnout' run (unless --save=false) adds one entry.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyUser, "user", "", "GitHub login (required)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show (0 = all)")
	_ = historyCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	assessments, err := db.ListAssessments(historyUser, historyLimit)
	if err != nil {
		return fmt.Errorf("listing assessments: %w", err)
	}

	if flagJSON {
		return printJSON(assessments)
	}

	if len(assessments) == 0 {
		fmt.Println("No assessments yet. Run 'devpulse burnout' first.")
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Assessment History: %s", historyUser)))
	fmt.Println()

	tbl := output.NewTable("Assessed", "Repository", "Window", "Score", "Confidence")
	for _, a := range assessments {
		repo := a.RepositoryID
		if repo == "" {
			repo = "all"
		}
		tbl.AddRow(
			a.AssessedAt.Local().Format("2006-01-02 15:04"),
			repo,
			fmt.Sprintf("%dd", a.WindowDays),
			fmt.Sprintf("%d", a.Score),
			fmt.Sprintf("%.0f%%", a.Confidence*100),
		)
	}
	tbl.Print()
	return nil
}
