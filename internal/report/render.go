package report

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/docsentry/docsentry/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	CacheHits    int
}

// PrintResults writes a per-document findings listing in document order.
// Issue order within a document is preserved (encounter order), never
// re-sorted: reviewers read findings in the order the text was extracted.
func PrintResults(w io.Writer, results []types.ScanResult, opts PrintOptions) {
	high, med, total := 0, 0, 0
	for _, res := range results {
		switch {
		case res.IsEmpty:
			fmt.Fprintf(w, "%s: no extractable text\n", res.FileName)
		case res.Safe:
			fmt.Fprintf(w, "%s: clean (%d pages)\n", res.FileName, res.PageCount)
		default:
			fmt.Fprintf(w, "%s: %d issues (%d pages)\n", res.FileName, len(res.Issues), res.PageCount)
		}
		for _, is := range res.Issues {
			total++
			switch is.Severity {
			case types.SevHigh:
				high++
			case types.SevMed:
				med++
			}
			sev := string(is.Severity)
			if !opts.NoColor {
				sev = colorSeverity(is.Severity)
			}
			fmt.Fprintf(w, "  %-6s p%-3d %-17s %s\n", sev, is.Page, is.Kind, is.Detail)
			fmt.Fprintf(w, "         context: %s\n", truncate(is.Context, 100))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Issues: %d (high: %d, medium: %d)\n", total, high, med)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 || opts.CacheHits > 0 {
		fmt.Fprintf(w, "Documents scanned: %d (cached: %d)\n", opts.FilesScanned, opts.CacheHits)
	}
}

// PrintRules writes the active detection configuration as a table.
func PrintRules(w io.Writer, phrases []string, microMaxPt float64, hiddenColors []string) error {
	t := tablewriter.NewWriter(w)
	t.Header("Rule", "Severity", "Configuration")
	if err := t.Append([]string{"injection_keyword", "high", fmt.Sprintf("%d phrases", len(phrases))}); err != nil {
		return err
	}
	if err := t.Append([]string{"micro_text", "medium", fmt.Sprintf("font size < %.1fpt", microMaxPt)}); err != nil {
		return err
	}
	if err := t.Append([]string{"hidden_text", "high", fmt.Sprintf("colors: %v", hiddenColors)}); err != nil {
		return err
	}
	return t.Render()
}

// ShouldFail reports whether the issue set trips the fail-on gate.
// Accepted gates: "none", "medium" (any issue), "high".
func ShouldFail(issues []types.Issue, failOn string) bool {
	switch failOn {
	case "none", "":
		return false
	case "high":
		for _, is := range issues {
			if is.Severity == types.SevHigh {
				return true
			}
		}
		return false
	default:
		return len(issues) > 0
	}
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	default:
		return "\x1b[33mmedium\x1b[0m" // yellow
	}
}
