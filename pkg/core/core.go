package core

import (
	"github.com/docsentry/docsentry/internal/config"
	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/highlight"
	"github.com/docsentry/docsentry/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Config     = engine.Config
	Result     = engine.Result
	ScanResult = types.ScanResult
	Issue      = types.Issue
	Format     = extract.Format
	Segment    = highlight.Segment
)

const (
	FormatPDF  = extract.FormatPDF
	FormatDOCX = extract.FormatDOCX
)

// ErrUnsupportedFormat is returned when no adapter exists for the declared
// format.
var ErrUnsupportedFormat = extract.ErrUnsupportedFormat

// DefaultConfig returns an engine configuration with the built-in phrase
// list, thresholds, and redaction token.
func DefaultConfig() Config {
	s := config.Resolve(config.FileConfig{}, config.FileConfig{})
	return Config{
		Phrases:        s.Phrases,
		MicroTextMaxPt: s.MicroTextMaxPt,
		HiddenColors:   s.HiddenColors,
		RedactionToken: s.RedactionToken,
	}
}

// ScanBytes scans one in-memory document of the declared format.
func ScanBytes(fileName string, data []byte, format Format, cfg Config) (ScanResult, error) {
	return engine.ScanBytes(fileName, data, format, cfg)
}

// ScanPath scans a document file or a directory of documents.
func ScanPath(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// Highlight tokenizes a result's raw text into plain/flagged segments whose
// concatenation reproduces the raw text exactly.
func Highlight(res ScanResult, phrases []string) []Segment {
	return highlight.Build(res.RawText, res.Issues, phrases)
}
