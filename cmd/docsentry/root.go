package docsentry

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagFailOn        string
	flagNoColor       bool
	flagNoCache       bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the Docsentry CLI.
var rootCmd = &cobra.Command{
	Use:           "docsentry",
	Short:         "Inspect documents for hidden or manipulative content",
	Long:          "Docsentry scans PDF and DOCX documents for injection phrases, micro-text, and background-colored text before their content reaches an automated consumer.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the Docsentry CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "medium", "fail on none|medium|high")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the per-document result cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update docsentry to the latest release")
}
