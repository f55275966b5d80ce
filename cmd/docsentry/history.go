package docsentry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/audit"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history [PATH]",
		Short: "Show past scans recorded in the audit log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, _ := filepath.Abs(root)
			records, err := audit.NewAuditLog(abs).LoadHistory()
			if err != nil {
				return fmt.Errorf("no scan history for %s", abs)
			}
			for i, r := range records {
				if flagHistoryLimit > 0 && i >= flagHistoryLimit {
					break
				}
				fmt.Fprintf(os.Stdout, "%s  %s  docs: %d  issues: %d (high: %d, medium: %d)  %s\n",
					r.Timestamp.Format("2006-01-02 15:04:05"),
					r.ScanID,
					r.Documents,
					r.TotalIssues,
					r.SeverityCounts["high"],
					r.SeverityCounts["medium"],
					r.Duration,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "show at most this many records (0 = all)")
	rootCmd.AddCommand(cmd)
}
