package docsentry

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/docsentry/docsentry/internal/config"
)

var (
	cfgOutput     string
	cfgMicroMaxPt float64
	cfgToken      string
	cfgDedupe     bool
	cfgNoColor    bool
	cfgFailOn     string
	cfgFull       bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .docsentry.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".docsentry.yml", "output file path")
	initCmd.Flags().Float64Var(&cfgMicroMaxPt, "micro-text-max-pt", config.DefaultMicroTextMaxPt, "micro-text size threshold in points")
	initCmd.Flags().StringVar(&cfgToken, "redaction-token", config.DefaultRedactionToken, "replacement token for sanitized phrases")
	initCmd.Flags().BoolVar(&cfgDedupe, "dedupe-per-run", false, "collapse per-run duplicate issue kinds")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "medium", "default fail-on gate: none|medium|high")
	initCmd.Flags().BoolVar(&cfgFull, "full", false, "write the built-in phrase list and hidden colors explicitly")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	fc := config.FileConfig{
		MicroTextMaxPt: &cfgMicroMaxPt,
		RedactionToken: &cfgToken,
		DedupePerRun:   &cfgDedupe,
		NoColor:        &cfgNoColor,
		FailOn:         &cfgFailOn,
	}
	if cfgFull {
		phrases := config.DefaultPhrases()
		colors := config.DefaultHiddenColors()
		fc.Phrases = &phrases
		fc.HiddenColors = &colors
	}
	b, err := yaml.Marshal(fc)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgOutput); err == nil {
		return fmt.Errorf("refusing to overwrite existing %s", cfgOutput)
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "wrote", cfgOutput)
	return nil
}
