package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildDocx assembles a minimal compound archive around the given
// word/document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(documentPart)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

const docBody = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Visible paragraph text.</w:t></w:r>
      <w:r>
        <w:rPr><w:color w:val="FFFFFF"/></w:rPr>
        <w:t>hidden payload</w:t>
      </w:r>
      <w:r>
        <w:rPr><w:sz w:val="4"/></w:rPr>
        <w:t>tiny</w:t>
      </w:r>
      <w:r><w:rPr><w:b/></w:rPr></w:r>
      <w:r>
        <w:rPr><w:color w:themeColor="background1"/></w:rPr>
        <w:t>theme hidden</w:t>
      </w:r>
    </w:p>
  </w:body>
</w:document>`

func TestDocxExtract(t *testing.T) {
	data := buildDocx(t, docBody)
	doc, err := docxAdapter{}.Extract(data, Options{HiddenColors: []string{"FFFFFF", "background1"}})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.PageCount != 1 {
		t.Fatalf("page count should be fixed at 1, got %d", doc.PageCount)
	}
	// The run with no text node is skipped.
	if len(doc.Runs) != 4 {
		t.Fatalf("expected 4 runs, got %d: %+v", len(doc.Runs), doc.Runs)
	}

	plain := doc.Runs[0]
	assert.Equal(t, "Visible paragraph text.", plain.Text)
	assert.False(t, plain.HiddenColor)
	assert.Zero(t, plain.FontSizePt)

	white := doc.Runs[1]
	assert.Equal(t, "hidden payload", white.Text)
	assert.True(t, white.HiddenColor)
	assert.Equal(t, "FFFFFF", white.ColorHex)

	tiny := doc.Runs[2]
	assert.Equal(t, "tiny", tiny.Text)
	// w:sz val="4" half-points is 2pt.
	assert.Equal(t, 2.0, tiny.FontSizePt)
	assert.False(t, tiny.HiddenColor)

	theme := doc.Runs[3]
	assert.True(t, theme.HiddenColor)

	for i, run := range doc.Runs {
		if run.Index != i {
			t.Fatalf("run %d has index %d", i, run.Index)
		}
		if run.Page != 1 {
			t.Fatalf("run %d not on page 1", i)
		}
	}
	assert.Equal(t, "Visible paragraph text. hidden payload tiny theme hidden", doc.RawText)
}

func TestDocxExtract_HiddenColorCaseInsensitive(t *testing.T) {
	body := `<w:document xmlns:w="http://example.invalid/w">
  <w:p><w:r><w:rPr><w:color w:val="ffffff"/></w:rPr><w:t>x</w:t></w:r></w:p>
</w:document>`
	doc, err := docxAdapter{}.Extract(buildDocx(t, body), Options{HiddenColors: []string{"FFFFFF"}})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(doc.Runs) != 1 || !doc.Runs[0].HiddenColor {
		t.Fatalf("lowercase color value should still match: %+v", doc.Runs)
	}
}

func TestDocxExtract_NoHiddenColorsConfigured(t *testing.T) {
	body := `<w:document xmlns:w="http://example.invalid/w">
  <w:p><w:r><w:rPr><w:color w:val="FFFFFF"/></w:rPr><w:t>x</w:t></w:r></w:p>
</w:document>`
	doc, err := docxAdapter{}.Extract(buildDocx(t, body), Options{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Runs[0].HiddenColor {
		t.Fatalf("no configured colors means nothing is hidden")
	}
}

func TestDocxExtract_EmptyBody(t *testing.T) {
	body := `<w:document xmlns:w="http://example.invalid/w"><w:body/></w:document>`
	doc, err := docxAdapter{}.Extract(buildDocx(t, body), Options{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(doc.Runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(doc.Runs))
	}
	if doc.RawText != "" {
		t.Fatalf("expected empty raw text, got %q", doc.RawText)
	}
	if doc.PageCount != 1 {
		t.Fatalf("page count should be 1, got %d", doc.PageCount)
	}
}

func TestDocxExtract_NotAnArchive(t *testing.T) {
	_, err := docxAdapter{}.Extract([]byte("this is not a zip"), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Format != FormatDOCX {
		t.Fatalf("wrong format on parse error: %s", pe.Format)
	}
}

func TestDocxExtract_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<x/>"))
	_ = zw.Close()

	_, err := docxAdapter{}.Extract(buf.Bytes(), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for missing document part, got %v", err)
	}
}

func TestDocxExtract_MalformedMarkup(t *testing.T) {
	data := buildDocx(t, `<w:document xmlns:w="http://example.invalid/w"><w:r><w:t>unterminated`)
	_, err := docxAdapter{}.Extract(data, Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for malformed markup, got %v", err)
	}
}

func TestDocxExtract_ProgressCheckpoints(t *testing.T) {
	var calls [][2]int
	opts := Options{Progress: func(done, total int) { calls = append(calls, [2]int{done, total}) }}
	_, err := docxAdapter{}.Extract(buildDocx(t, docBody), opts)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d progress calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}
