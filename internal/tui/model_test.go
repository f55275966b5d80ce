package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/docsentry/docsentry/internal/types"
)

func sampleResult() types.ScanResult {
	return types.ScanResult{
		FileName:  "memo.docx",
		PageCount: 1,
		RawText:   "visible text plus hidden payload and tiny print",
		Issues: []types.Issue{
			{ID: "aaaa", Kind: types.KindHiddenText, Detail: "text color FFFFFF matches the page background", Context: "hidden payload", Page: 1, Severity: types.SevHigh},
			{ID: "bbbb", Kind: types.KindMicroText, Detail: "text rendered at 2.0pt, below the 4.0pt legibility threshold", Context: "tiny print", Page: 1, Severity: types.SevMed},
		},
		SanitizedText: "visible text plus hidden payload and tiny print",
	}
}

func TestApplyFilters_SearchQuery(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)

	// Search by kind
	m.searchQuery = "hidden"
	m.applyFilters()
	if len(m.filteredIssues) != 1 {
		t.Errorf("expected 1 issue matching 'hidden', got %d", len(m.filteredIssues))
	}
	if m.filteredIssues[0].Kind != types.KindHiddenText {
		t.Errorf("expected hidden_text, got %s", m.filteredIssues[0].Kind)
	}

	// Search by detail
	m.searchQuery = "legibility"
	m.applyFilters()
	if len(m.filteredIssues) != 1 || m.filteredIssues[0].Kind != types.KindMicroText {
		t.Errorf("detail search failed: %+v", m.filteredIssues)
	}

	// Search by context, case insensitive
	m.searchQuery = "TINY"
	m.applyFilters()
	if len(m.filteredIssues) != 1 {
		t.Errorf("expected 1 issue matching 'TINY', got %d", len(m.filteredIssues))
	}

	// No match
	m.searchQuery = "zzz"
	m.applyFilters()
	if len(m.filteredIssues) != 0 {
		t.Errorf("expected 0 issues, got %d", len(m.filteredIssues))
	}
}

func TestApplyFilters_SeverityFilter(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	m.severityFilter = types.SevHigh
	m.applyFilters()
	if len(m.filteredIssues) != 1 || m.filteredIssues[0].Severity != types.SevHigh {
		t.Errorf("severity filter failed: %+v", m.filteredIssues)
	}

	m.severityFilter = types.SevMed
	m.applyFilters()
	if len(m.filteredIssues) != 1 || m.filteredIssues[0].Severity != types.SevMed {
		t.Errorf("severity filter failed: %+v", m.filteredIssues)
	}
}

func TestClearFilters(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	m.searchQuery = "hidden"
	m.severityFilter = types.SevHigh
	m.applyFilters()
	m.clearFilters()
	if m.searchQuery != "" || m.severityFilter != "" {
		t.Errorf("filters not cleared")
	}
	if len(m.displayIssues()) != 2 {
		t.Errorf("expected full issue list after clear, got %d", len(m.displayIssues()))
	}
}

func TestCycleSeverityFilter(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)

	m.cycleSeverityFilter()
	if m.severityFilter != types.SevHigh {
		t.Errorf("expected high after first cycle, got %q", m.severityFilter)
	}
	m.cycleSeverityFilter()
	if m.severityFilter != types.SevMed {
		t.Errorf("expected medium after second cycle, got %q", m.severityFilter)
	}
	m.cycleSeverityFilter()
	if m.severityFilter != "" {
		t.Errorf("expected empty after third cycle, got %q", m.severityFilter)
	}
}

func TestSelectedIssue(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	is, ok := m.selectedIssue()
	if !ok {
		t.Fatalf("expected a selected issue")
	}
	if is.Kind != types.KindHiddenText {
		t.Errorf("expected the first issue selected, got %s", is.Kind)
	}

	empty := NewModel(types.ScanResult{FileName: "clean.pdf", Safe: true}, nil, nil)
	if _, ok := empty.selectedIssue(); ok {
		t.Errorf("no issue should be selected for a clean document")
	}
}

func TestSeverityText(t *testing.T) {
	if severityText(types.SevHigh) != "HIGH" {
		t.Errorf("wrong text for high")
	}
	if severityText(types.SevMed) != "MED" {
		t.Errorf("wrong text for medium")
	}
}

func TestViewModeLabels(t *testing.T) {
	if ViewFindings.label() != "Findings" || ViewSanitized.label() != "Sanitized" || ViewProof.label() != "Proof" {
		t.Errorf("unexpected view labels")
	}
}

func TestViewportContent_FindingsView(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	content := m.viewportContent()
	for _, want := range []string{"hidden_text", "aaaa", "page:    1", "context: hidden payload"} {
		if !strings.Contains(content, want) {
			t.Errorf("findings pane missing %q:\n%s", want, content)
		}
	}
}

func TestViewportContent_SanitizedView(t *testing.T) {
	res := sampleResult()
	res.SanitizedText = "clean artifact"
	m := NewModel(res, nil, nil)
	m.viewMode = ViewSanitized
	if got := m.viewportContent(); got != "clean artifact" {
		t.Errorf("sanitized pane = %q", got)
	}

	m.result.IsEmpty = true
	if got := m.viewportContent(); got != "(no extractable text)" {
		t.Errorf("empty sanitized pane = %q", got)
	}
}

func TestViewportContent_ProofView(t *testing.T) {
	m := NewModel(sampleResult(), []string{"hidden payload"}, nil)
	m.viewMode = ViewProof
	content := m.viewportContent()
	// Styling aside, all original text must appear in the proof pane.
	if !strings.Contains(content, "visible text plus") {
		t.Errorf("proof pane lost plain text:\n%s", content)
	}
	if !strings.Contains(content, "hidden payload") {
		t.Errorf("proof pane lost flagged text:\n%s", content)
	}
}

func TestInstallResult(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	m.searchQuery = "hidden"
	m.applyFilters()

	fresh := types.ScanResult{FileName: "memo.docx", Safe: true, PageCount: 1, RawText: "x", SanitizedText: "x"}
	m.installResult(fresh)
	if m.result.FileName != "memo.docx" || !m.result.Safe {
		t.Errorf("result not installed: %+v", m.result)
	}
	if m.searchQuery != "" {
		t.Errorf("filters should reset on install")
	}
	if len(m.displayIssues()) != 0 {
		t.Errorf("stale issues survived install")
	}
}

func TestRescan_SessionGating(t *testing.T) {
	calls := 0
	m := NewModel(sampleResult(), nil, func() (types.ScanResult, error) {
		calls++
		return types.ScanResult{FileName: "memo.docx", Safe: true}, nil
	})

	cmd := m.rescan()
	staleMsg := cmd() // completes under generation 1

	// A second rescan supersedes the first before it lands.
	cmd2 := m.rescan()
	freshMsg := cmd2()

	updated, _ := m.Update(staleMsg)
	m = updated.(Model)
	if m.result.Safe {
		t.Fatalf("stale rescan result was installed")
	}

	updated, _ = m.Update(freshMsg)
	m = updated.(Model)
	if !m.result.Safe {
		t.Fatalf("latest rescan result was dropped")
	}
	if calls != 2 {
		t.Fatalf("expected 2 scan invocations, got %d", calls)
	}
}

func TestRescan_ErrorSurfacesInStatus(t *testing.T) {
	m := NewModel(sampleResult(), nil, func() (types.ScanResult, error) {
		return types.ScanResult{}, errors.New("parse pdf document: malformed container")
	})
	cmd := m.rescan()
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if m.scanErr == "" {
		t.Fatalf("scan error not recorded")
	}
	if !strings.Contains(m.statusMessage, "Scan failed") {
		t.Fatalf("status should surface the failure, got %q", m.statusMessage)
	}
	// The previous result stays on screen.
	if m.result.FileName != "memo.docx" {
		t.Fatalf("previous result lost on error")
	}
}

func TestRescan_NoFunc(t *testing.T) {
	m := NewModel(sampleResult(), nil, nil)
	msg := m.rescan()()
	if _, ok := msg.(statusMsg); !ok {
		t.Fatalf("expected a status message when rescan is unavailable, got %T", msg)
	}
}

func TestIssueRows(t *testing.T) {
	rows := issueRows(sampleResult().Issues)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "HIGH" || rows[0][1] != "hidden_text" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}
