package rules

import (
	"fmt"
	"strings"

	"github.com/docsentry/docsentry/internal/types"
)

// Keywords tests the run text against each configured phrase,
// case-insensitively. One issue per distinct matching phrase per run:
// repeated occurrences of the same phrase within a run do not multiply
// findings.
func Keywords(run types.TextRun, phrases []string) []types.Issue {
	if run.Text == "" || len(phrases) == 0 {
		return nil
	}
	lower := strings.ToLower(run.Text)
	var out []types.Issue
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if !strings.Contains(lower, strings.ToLower(phrase)) {
			continue
		}
		detail := fmt.Sprintf("injection phrase %q", phrase)
		out = append(out, types.Issue{
			ID:       issueID(run, types.KindInjectionKeyword, detail),
			Kind:     types.KindInjectionKeyword,
			Detail:   detail,
			Context:  run.Text,
			Page:     run.Page,
			Severity: types.SevHigh,
		})
	}
	return out
}
