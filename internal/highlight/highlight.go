// Package highlight reconstructs an annotated view of raw document text for
// human review. The output is a segment list whose concatenation reproduces
// the input byte-for-byte.
package highlight

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docsentry/docsentry/internal/fold"
	"github.com/docsentry/docsentry/internal/types"
)

// Segment is one slice of the original text, tagged flagged or plain.
type Segment struct {
	Text    string `json:"text"`
	Flagged bool   `json:"flagged"`
}

// Build tokenizes raw against the flaggable set: the configured phrases plus
// the distinct context strings of all issues. Needles are matched
// case-insensitively, longest first, so a short flagged fragment can never
// split a longer phrase that contains it. Matching folds in place rather
// than searching a lowered copy, since lowering can change byte length
// (U+212A KELVIN SIGN) and shift every later offset.
func Build(raw string, issues []types.Issue, phrases []string) []Segment {
	if raw == "" {
		return nil
	}
	needles := flaggable(issues, phrases)
	if len(needles) == 0 {
		return []Segment{{Text: raw}}
	}

	var segs []Segment
	plainStart := 0
	pos := 0
	for pos < len(raw) {
		matched := 0
		for _, n := range needles {
			if l := fold.PrefixLen(raw[pos:], n); l > 0 {
				matched = l
				break
			}
		}
		if matched == 0 {
			_, size := utf8.DecodeRuneInString(raw[pos:])
			pos += size
			continue
		}
		if pos > plainStart {
			segs = append(segs, Segment{Text: raw[plainStart:pos]})
		}
		segs = append(segs, Segment{Text: raw[pos : pos+matched], Flagged: true})
		pos += matched
		plainStart = pos
	}
	if plainStart < len(raw) {
		segs = append(segs, Segment{Text: raw[plainStart:]})
	}
	return segs
}

// flaggable returns the deduplicated needle set, lowercased and ordered by
// descending length (ties lexicographic) for longest-match-first scanning.
func flaggable(issues []types.Issue, phrases []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.ToLower(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, p := range phrases {
		add(p)
	}
	for _, is := range issues {
		add(is.Context)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Marker renders segments as plain text with flagged spans wrapped in
// guillemet markers, for terminal output and file export.
func Marker(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Flagged {
			b.WriteString("»")
			b.WriteString(s.Text)
			b.WriteString("«")
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
