package engine

import (
	"sync"

	"github.com/docsentry/docsentry/internal/types"
)

// Session owns the single "current document" state for an interactive
// consumer. Each scan request carries a generation token; only the latest
// generation may publish its result, so a completion arriving for a
// superseded scan is provably dropped rather than merged into current state.
type Session struct {
	mu      sync.Mutex
	gen     uint64
	current *types.ScanResult
}

// Token identifies one scan generation.
type Token struct {
	gen uint64
}

// Begin starts a new scan generation, invalidating any scan still in flight.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return Token{gen: s.gen}
}

// Complete installs res as the current result if tok is still the latest
// generation. It reports whether the result was accepted.
func (s *Session) Complete(tok Token, res types.ScanResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.gen != s.gen {
		return false
	}
	// Whole-value replacement: readers never observe a partial update.
	s.current = &res
	return true
}

// Live reports whether tok is still the latest generation.
func (s *Session) Live(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tok.gen == s.gen
}

// Reset clears the current result and supersedes any in-flight scan.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.current = nil
}

// Current returns a copy of the current result, if any.
func (s *Session) Current() (types.ScanResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return types.ScanResult{}, false
	}
	return *s.current, true
}
