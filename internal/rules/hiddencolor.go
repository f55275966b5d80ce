package rules

import (
	"fmt"

	"github.com/docsentry/docsentry/internal/types"
)

// HiddenColor flags non-blank runs whose color the adapter matched against
// the configured background-color set.
func HiddenColor(run types.TextRun) []types.Issue {
	if !run.HiddenColor || run.Blank() {
		return nil
	}
	color := run.ColorHex
	if color == "" {
		color = "background"
	}
	detail := fmt.Sprintf("text color %s matches the page background", color)
	return []types.Issue{{
		ID:       issueID(run, types.KindHiddenText, detail),
		Kind:     types.KindHiddenText,
		Detail:   detail,
		Context:  run.Text,
		Page:     run.Page,
		Severity: types.SevHigh,
	}}
}
