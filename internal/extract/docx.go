package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docsentry/docsentry/internal/types"
)

const documentPart = "word/document.xml"

// docxAdapter walks word/document.xml and emits one run per non-empty w:r
// element. DOCX has no usable pagination model, so every run lands on page 1
// and PageCount is fixed at 1.
type docxAdapter struct{}

func (docxAdapter) Extract(data []byte, opts Options) (*Document, error) {
	progress := func(done int) {
		if opts.Progress != nil {
			opts.Progress(done, 3)
		}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Format: FormatDOCX, Err: err}
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, &ParseError{Format: FormatDOCX, Err: errors.New("missing " + documentPart)}
	}
	rc, err := part.Open()
	if err != nil {
		return nil, &ParseError{Format: FormatDOCX, Err: err}
	}
	defer rc.Close()
	progress(1)

	runs, err := parseRuns(rc, opts.HiddenColors)
	if err != nil {
		return nil, &ParseError{Format: FormatDOCX, Err: err}
	}
	progress(2)

	texts := make([]string, len(runs))
	for i := range runs {
		texts[i] = runs[i].Text
	}
	doc := &Document{
		Runs:      runs,
		PageCount: 1,
		RawText:   strings.Join(texts, " "),
	}
	progress(3)
	return doc, nil
}

// parseRuns streams the markup and collects w:r runs in document order.
// A run with zero w:t children is skipped entirely.
func parseRuns(r io.Reader, hiddenColors []string) ([]types.TextRun, error) {
	hidden := make(map[string]bool, len(hiddenColors))
	for _, c := range hiddenColors {
		hidden[strings.ToUpper(c)] = true
	}

	dec := xml.NewDecoder(r)
	var runs []types.TextRun

	var (
		inRun     bool
		inText    bool
		textNodes int
		text      strings.Builder
		colorHex  string
		isHidden  bool
		sizePt    float64
	)
	reset := func() {
		textNodes = 0
		text.Reset()
		colorHex = ""
		isHidden = false
		sizePt = 0
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unreadable markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				inRun = true
				reset()
			case "t":
				if inRun {
					inText = true
					textNodes++
				}
			case "color":
				if inRun {
					val := strings.ToUpper(attr(t, "val"))
					theme := attr(t, "themeColor")
					if val != "" {
						colorHex = val
					}
					if hidden[val] || hidden[strings.ToUpper(theme)] {
						isHidden = true
						if colorHex == "" {
							colorHex = theme
						}
					}
				}
			case "sz":
				if inRun {
					if hp, err := strconv.ParseFloat(attr(t, "val"), 64); err == nil {
						// w:sz is expressed in half-points.
						sizePt = hp / 2
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if inRun && textNodes > 0 {
					runs = append(runs, types.TextRun{
						Text:        text.String(),
						Page:        1,
						Index:       len(runs),
						FontSizePt:  sizePt,
						ColorHex:    colorHex,
						HiddenColor: isHidden,
					})
				}
				inRun = false
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}
	return runs, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
