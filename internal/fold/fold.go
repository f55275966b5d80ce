// Package fold provides case-insensitive text matching whose positions are
// always byte offsets into the original string. Lowercasing a string first
// and searching the copy breaks as soon as a character changes byte length
// under case conversion (U+212A KELVIN SIGN is 3 bytes, "k" is 1), so any
// caller that needs to slice the original text must match fold-wise in
// place instead.
package fold

import (
	"unicode"
	"unicode/utf8"
)

// PrefixLen returns the number of bytes at the start of s that match needle
// under Unicode simple case folding, or -1 when s does not start with
// needle. The length is measured in s and may differ from len(needle).
// An empty needle matches nothing.
func PrefixLen(s, needle string) int {
	if needle == "" {
		return -1
	}
	n := 0
	for _, nr := range needle {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || !runeEq(r, nr) {
			return -1
		}
		n += size
	}
	return n
}

// Contains reports whether s contains needle under simple case folding.
func Contains(s, needle string) bool {
	for pos := 0; pos < len(s); {
		if PrefixLen(s[pos:], needle) > 0 {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return false
}

// runeEq walks the simple-fold orbit of a looking for b.
func runeEq(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
