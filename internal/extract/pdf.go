package extract

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docsentry/docsentry/internal/types"
)

// pdfAdapter extracts per-page text items with their effective font size.
// Page numbers are 1-based and non-decreasing across the run stream.
type pdfAdapter struct{}

func (pdfAdapter) Extract(data []byte, opts Options) (doc *Document, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	// Convert that into a ParseError like any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ParseError{Format: FormatPDF, Err: fmt.Errorf("malformed container: %v", r)}
		}
	}()

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Format: FormatPDF, Err: err}
	}

	total := rd.NumPage()
	out := &Document{PageCount: total}
	var pages []string
	for i := 1; i <= total; i++ {
		page := rd.Page(i)
		if page.V.IsNull() {
			if opts.Progress != nil {
				opts.Progress(i, total)
			}
			continue
		}
		var pieces []string
		for _, item := range page.Content().Text {
			out.Runs = append(out.Runs, types.TextRun{
				Text:       item.S,
				Page:       i,
				Index:      len(out.Runs),
				FontSizePt: math.Abs(item.FontSize),
			})
			pieces = append(pieces, item.S)
		}
		pages = append(pages, strings.Join(pieces, " "))
		if opts.Progress != nil {
			opts.Progress(i, total)
		}
	}
	out.RawText = strings.Join(pages, "\n\n")
	return out, nil
}
