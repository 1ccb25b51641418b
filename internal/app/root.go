// Package app contains the Cobra command tree for devpulse.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "devpulse",
	Short: "GitHub activity analytics for engineering teams",
	Long: `devpulse turns raw GitHub activity (commits, pull requests, issues) into
daily aggregates, burnout risk assessments, productivity metrics, and
period-over-period trends.

Typical flow: 'devpulse sync' to aggregate a user's events into daily
metrics, then 'devpulse burnout' / 'devpulse productivity' / 'devpulse
trend' to score them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("devpulse", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  sync          Aggregate GitHub events into daily metrics")
		fmt.Println("  burnout       Assess burnout risk from stored daily metrics")
		fmt.Println("  productivity  Compute productivity metrics for a window")
		fmt.Println("  trend         Compare productivity against the previous period")
		fmt.Println("  history       List stored burnout assessments")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/devpulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
