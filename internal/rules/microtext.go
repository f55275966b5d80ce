package rules

import (
	"fmt"

	"github.com/docsentry/docsentry/internal/types"
)

// MicroText flags non-blank runs rendered in the open interval (0, maxPt).
// Size 0 means the adapter had no size information and is never flagged;
// text at exactly maxPt is legible and passes.
func MicroText(run types.TextRun, maxPt float64) []types.Issue {
	if maxPt <= 0 {
		return nil
	}
	if run.FontSizePt <= 0 || run.FontSizePt >= maxPt {
		return nil
	}
	if run.Blank() {
		return nil
	}
	detail := fmt.Sprintf("text rendered at %.1fpt, below the %.1fpt legibility threshold", run.FontSizePt, maxPt)
	return []types.Issue{{
		ID:       issueID(run, types.KindMicroText, detail),
		Kind:     types.KindMicroText,
		Detail:   detail,
		Context:  run.Text,
		Page:     run.Page,
		Severity: types.SevMed,
	}}
}
