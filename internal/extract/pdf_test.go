package extract

import (
	"errors"
	"testing"
)

func TestPdfExtract_GarbageBytes(t *testing.T) {
	_, err := pdfAdapter{}.Extract([]byte("definitely not a pdf"), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Format != FormatPDF {
		t.Fatalf("wrong format on parse error: %s", pe.Format)
	}
}

func TestPdfExtract_TruncatedHeader(t *testing.T) {
	// A valid magic number with nothing behind it must fail cleanly, not
	// produce an empty document.
	_, err := pdfAdapter{}.Extract([]byte("%PDF-1.7\n"), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for truncated file, got %v", err)
	}
}
