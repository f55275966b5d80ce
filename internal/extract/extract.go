// Package extract turns raw document bytes into an ordered stream of
// formatting-tagged text runs. One adapter exists per supported container
// format; anything else is rejected before an adapter runs.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docsentry/docsentry/internal/types"
)

// Format is the declared container format of a document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for any format without an adapter.
// Callers must check this before attempting extraction; it never reaches
// the detection rules.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ParseError wraps an adapter failure. No partial extraction escapes: when a
// ParseError is returned the document produced no runs and no ScanResult.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is the adapter output: the run stream plus the joined raw text.
type Document struct {
	Runs      []types.TextRun
	PageCount int
	RawText   string
}

// Options carries the adapter tunables that affect run tagging.
type Options struct {
	// HiddenColors are the color encodings the DOCX adapter flags as
	// background-matching. Comparison is case-insensitive.
	HiddenColors []string
	// Progress, when non-nil, is called with (done, total) as extraction
	// advances: per page for PDF, at fixed checkpoints for DOCX.
	Progress func(done, total int)
}

// Adapter extracts a Document from raw bytes.
type Adapter interface {
	Extract(data []byte, opts Options) (*Document, error)
}

// ForFormat returns the adapter for a declared format, or
// ErrUnsupportedFormat.
func ForFormat(f Format) (Adapter, error) {
	switch f {
	case FormatPDF:
		return pdfAdapter{}, nil
	case FormatDOCX:
		return docxAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// DetectFormat maps a file name to a Format by extension. The zero Format
// means unsupported.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return ""
	}
}
