package types

import "strings"

// Severity is a coarse-grained risk level for an issue.
type Severity string

const (
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// IssueKind identifies the detection signal that produced an issue.
type IssueKind string

const (
	// KindInjectionKeyword marks text containing a configured injection phrase.
	KindInjectionKeyword IssueKind = "injection_keyword"
	// KindHiddenText marks text whose color matches the page background.
	KindHiddenText IssueKind = "hidden_text"
	// KindMicroText marks text rendered below the legibility threshold.
	KindMicroText IssueKind = "micro_text"
)

// TextRun is one atomic extracted text fragment with its formatting metadata.
// Runs are produced by a format adapter in document order and are immutable
// once emitted.
type TextRun struct {
	Text string
	// Page is 1-based. DOCX has no pagination model; its adapter pins every
	// run to page 1.
	Page int
	// Index is the run's position in adapter encounter order, 0-based.
	Index int
	// FontSizePt is the normalized font size in points. 0 means the adapter
	// could not determine a size.
	FontSizePt float64
	// ColorHex is the run's text color as uppercase hex or a theme token,
	// empty when unknown.
	ColorHex string
	// HiddenColor is set by the adapter when ColorHex matches one of the
	// configured background-color encodings.
	HiddenColor bool
}

// Blank reports whether the run contains no visible characters.
func (r TextRun) Blank() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Issue describes one detection finding on a single text run.
type Issue struct {
	// ID is deterministic: rescanning the same document yields the same IDs.
	ID       string    `json:"id"`
	Kind     IssueKind `json:"kind"`
	Detail   string    `json:"detail"`
	Context  string    `json:"context"`
	Page     int       `json:"page"`
	Severity Severity  `json:"severity"`
}

// ScanResult is the aggregate outcome of scanning one document.
// A ScanResult is replaced wholesale on a new scan, never mutated in place.
type ScanResult struct {
	FileName      string  `json:"file_name"`
	Safe          bool    `json:"safe"`
	Issues        []Issue `json:"issues"`
	PageCount     int     `json:"page_count"`
	RawText       string  `json:"raw_text"`
	SanitizedText string  `json:"sanitized_text"`
	IsEmpty       bool    `json:"is_empty"`
}
