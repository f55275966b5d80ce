// Package sanitize derives a redacted text artifact from raw document text.
// Every case-insensitive occurrence of every configured phrase is replaced
// with a fixed redaction token, independent of the issue list.
package sanitize

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docsentry/docsentry/internal/fold"
)

// Apply replaces all phrase occurrences in text with token. Phrases are
// applied longest-first (ties broken lexicographically) so a short phrase
// that is a substring of a longer one cannot leave partial or double
// redactions. Apply is idempotent as long as token contains no phrase.
func Apply(text string, phrases []string, token string) string {
	if text == "" || len(phrases) == 0 {
		return text
	}
	ordered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p != "" {
			ordered = append(ordered, p)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	for _, p := range ordered {
		text = replaceFold(text, p, token)
	}
	return text
}

// replaceFold is strings.ReplaceAll with Unicode case folding on the needle,
// preserving every byte outside the matched spans. It folds in place instead
// of searching a lowered copy: lowering can change byte length (U+212A
// KELVIN SIGN lowers to "k"), which would desynchronize match offsets from
// the original bytes.
func replaceFold(s, needle, repl string) string {
	var b strings.Builder
	start := 0
	pos := 0
	for pos < len(s) {
		l := fold.PrefixLen(s[pos:], needle)
		if l <= 0 {
			_, size := utf8.DecodeRuneInString(s[pos:])
			pos += size
			continue
		}
		b.WriteString(s[start:pos])
		b.WriteString(repl)
		pos += l
		start = pos
	}
	if start == 0 {
		return s
	}
	b.WriteString(s[start:])
	return b.String()
}
