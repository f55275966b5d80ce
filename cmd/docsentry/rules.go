package docsentry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/config"
	"github.com/docsentry/docsentry/internal/report"
)

var flagRulesPhrases bool

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active detection rules and their configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			var gcfg, lcfg config.FileConfig
			if c, err := config.LoadGlobal(); err == nil {
				gcfg = c
			}
			cwd, _ := os.Getwd()
			if c, err := config.LoadLocal(filepath.Clean(cwd)); err == nil {
				lcfg = c
			}
			s := config.Resolve(lcfg, gcfg)
			if flagRulesPhrases {
				for _, p := range s.Phrases {
					fmt.Println(p)
				}
				return nil
			}
			return report.PrintRules(os.Stdout, s.Phrases, s.MicroTextMaxPt, s.HiddenColors)
		},
	}
	cmd.Flags().BoolVar(&flagRulesPhrases, "phrases", false, "print the configured phrase list, one per line")
	rootCmd.AddCommand(cmd)
}
