package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsentry/docsentry/internal/types"
)

// Run starts the review UI for one document's scan result. phrases feed the
// proof view's highlighter; rescanFunc re-runs the scan when requested.
func Run(result types.ScanResult, phrases []string, rescanFunc func() (types.ScanResult, error)) error {
	m := NewModel(result, phrases, rescanFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
