// Package rules contains the stateless detection rules. Each rule is a pure,
// total function from one text run to zero or more issues; any failure path
// lives in the adapters, never here.
package rules

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/docsentry/docsentry/internal/types"
)

// Config holds the tunables the rules evaluate against.
type Config struct {
	Phrases        []string
	MicroTextMaxPt float64
	// DedupePerRun collapses multiple issues of the same kind on one run
	// into the first. Off by default: multiplicity is preserved.
	DedupePerRun bool
}

// Evaluate runs every rule against a single run and returns the issues in
// rule order: keyword, hidden-color, micro-text. A run may trigger several
// rules; nothing is suppressed unless DedupePerRun is set.
func Evaluate(run types.TextRun, cfg Config) []types.Issue {
	var out []types.Issue
	out = append(out, Keywords(run, cfg.Phrases)...)
	out = append(out, HiddenColor(run)...)
	out = append(out, MicroText(run, cfg.MicroTextMaxPt)...)
	if cfg.DedupePerRun {
		out = dedupeByKind(out)
	}
	return out
}

func dedupeByKind(issues []types.Issue) []types.Issue {
	seen := make(map[types.IssueKind]bool, len(issues))
	var out []types.Issue
	for _, is := range issues {
		if seen[is.Kind] {
			continue
		}
		seen[is.Kind] = true
		out = append(out, is)
	}
	return out
}

// issueID derives a stable identifier from the run's position and the rule
// that fired, so repeated scans of one document yield identical issue sets.
func issueID(run types.TextRun, kind types.IssueKind, detail string) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%d|%d|%s|%s", run.Page, run.Index, kind, detail))
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
