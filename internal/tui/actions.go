package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsentry/docsentry/internal/highlight"
)

// copyCurrentView writes the active view's text to the system clipboard:
// the selected issue in the findings view, the sanitized artifact, or the
// marker-annotated proof text.
func (m *Model) copyCurrentView() tea.Cmd {
	text, label := m.currentViewText()
	if text == "" {
		return func() tea.Msg { return statusMsg("Nothing to copy") }
	}
	if err := clipboard.WriteAll(text); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg(label + " copied to clipboard") }
}

// exportCurrentView writes the active view's text to a timestamped file in
// the working directory.
func (m *Model) exportCurrentView() tea.Cmd {
	text, label := m.currentViewText()
	if text == "" {
		return func() tea.Msg { return statusMsg("Nothing to export") }
	}
	name := fmt.Sprintf("docsentry-%s-%s.txt", strings.ToLower(label), time.Now().Format("20060102-150405"))
	if err := os.WriteFile(name, []byte(text), 0600); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Export error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Exported to " + name) }
}

func (m *Model) currentViewText() (text, label string) {
	switch m.viewMode {
	case ViewSanitized:
		return m.result.SanitizedText, "Sanitized"
	case ViewProof:
		segs := highlight.Build(m.result.RawText, m.result.Issues, m.phrases)
		return highlight.Marker(segs), "Proof"
	default:
		is, ok := m.selectedIssue()
		if !ok {
			return "", "Finding"
		}
		return is.Context, "Finding"
	}
}
