package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/highlight"
	"github.com/docsentry/docsentry/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	flaggedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("208")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "HIGH"
	case types.SevMed:
		return "MED"
	default:
		return string(s)
	}
}

// ViewMode selects which of the three result views is active.
type ViewMode int

const (
	ViewFindings ViewMode = iota
	ViewSanitized
	ViewProof
)

func (v ViewMode) label() string {
	switch v {
	case ViewSanitized:
		return "Sanitized"
	case ViewProof:
		return "Proof"
	default:
		return "Findings"
	}
}

// Model is the state of the interactive review UI for one document.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model

	result  types.ScanResult
	phrases []string
	session *engine.Session
	// rescanFunc re-runs the scan for the current document.
	rescanFunc func() (types.ScanResult, error)

	viewMode ViewMode
	quitting bool
	ready    bool
	scanning bool
	scanErr  string
	width    int
	height   int

	statusMessage string
	showHelp      bool

	// Search & filter (findings view only)
	searchMode      bool
	searchInput     textinput.Model
	searchQuery     string
	severityFilter  types.Severity
	filteredIssues  []types.Issue
	filteredIndices []int
}

// NewModel initializes the review UI around an initial scan result.
func NewModel(result types.ScanResult, phrases []string, rescanFunc func() (types.ScanResult, error)) Model {
	columns := []table.Column{
		{Title: "Sev", Width: 6},
		{Title: "Kind", Width: 18},
		{Title: "Page", Width: 5},
		{Title: "Detail", Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(issueRows(result.Issues)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search kind, detail, or context..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	m := Model{
		table:       t,
		spinner:     sp,
		result:      result,
		phrases:     phrases,
		session:     &engine.Session{},
		rescanFunc:  rescanFunc,
		searchInput: ti,
	}
	m.statusMessage = m.defaultStatus()
	return m
}

func (m Model) defaultStatus() string {
	switch {
	case m.result.IsEmpty:
		return "no extractable text | q: quit | r: rescan"
	case m.result.Safe:
		return "document is clean | q: quit | tab: views | r: rescan"
	default:
		return "q: quit | ?: help | tab: views | j/k: navigate | c: copy | r: rescan"
	}
}

func issueRows(issues []types.Issue) []table.Row {
	rows := make([]table.Row, len(issues))
	for i, is := range issues {
		rows[i] = table.Row{
			severityText(is.Severity),
			string(is.Kind),
			fmt.Sprintf("%d", is.Page),
			is.Detail,
		}
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

type resultMsg struct {
	tok engine.Token
	res types.ScanResult
}

type scanErrMsg struct {
	tok engine.Token
	err error
}

type statusMsg string

// rescan kicks off a fresh scan under a new session generation. A completion
// for a superseded generation is dropped in Update, never merged.
func (m *Model) rescan() tea.Cmd {
	if m.rescanFunc == nil {
		return func() tea.Msg { return statusMsg("Rescan not available") }
	}
	tok := m.session.Begin()
	fn := m.rescanFunc
	return func() tea.Msg {
		res, err := fn()
		if err != nil {
			return scanErrMsg{tok: tok, err: err}
		}
		return resultMsg{tok: tok, res: res}
	}
}

func (m *Model) applyFilters() {
	hasSearch := m.searchQuery != ""
	hasSeverity := m.severityFilter != ""
	if !hasSearch && !hasSeverity {
		m.filteredIssues = nil
		m.filteredIndices = nil
		m.table.SetRows(issueRows(m.result.Issues))
		return
	}

	var filtered []types.Issue
	var indices []int
	query := strings.ToLower(m.searchQuery)
	for i, is := range m.result.Issues {
		if hasSeverity && is.Severity != m.severityFilter {
			continue
		}
		if hasSearch {
			kindMatch := strings.Contains(strings.ToLower(string(is.Kind)), query)
			detailMatch := strings.Contains(strings.ToLower(is.Detail), query)
			contextMatch := strings.Contains(strings.ToLower(is.Context), query)
			if !kindMatch && !detailMatch && !contextMatch {
				continue
			}
		}
		filtered = append(filtered, is)
		indices = append(indices, i)
	}
	m.filteredIssues = filtered
	m.filteredIndices = indices
	m.table.SetRows(issueRows(filtered))
	if m.table.Cursor() >= len(filtered) {
		m.table.SetCursor(0)
	}
}

func (m *Model) clearFilters() {
	m.searchQuery = ""
	m.severityFilter = ""
	m.applyFilters()
}

func (m *Model) displayIssues() []types.Issue {
	if m.filteredIssues != nil {
		return m.filteredIssues
	}
	return m.result.Issues
}

func (m *Model) selectedIssue() (types.Issue, bool) {
	issues := m.displayIssues()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(issues) {
		return types.Issue{}, false
	}
	return issues[idx], true
}

func (m *Model) cycleSeverityFilter() {
	switch m.severityFilter {
	case "":
		m.severityFilter = types.SevHigh
	case types.SevHigh:
		m.severityFilter = types.SevMed
	default:
		m.severityFilter = ""
	}
	m.applyFilters()
}

func (m *Model) installResult(res types.ScanResult) {
	m.result = res
	m.clearFilters()
	m.viewport.SetContent(m.viewportContent())
	m.statusMessage = m.defaultStatus()
}

// viewportContent renders the text pane for the current view mode.
func (m *Model) viewportContent() string {
	switch m.viewMode {
	case ViewSanitized:
		if m.result.IsEmpty {
			return "(no extractable text)"
		}
		return m.result.SanitizedText
	case ViewProof:
		if m.result.IsEmpty {
			return "(no extractable text)"
		}
		segs := highlight.Build(m.result.RawText, m.result.Issues, m.phrases)
		var b strings.Builder
		for _, seg := range segs {
			if seg.Flagged {
				b.WriteString(flaggedStyle.Render(seg.Text))
			} else {
				b.WriteString(seg.Text)
			}
		}
		return b.String()
	default:
		is, ok := m.selectedIssue()
		if !ok {
			return "(no issues)"
		}
		sev := sevMedStyle
		if is.Severity == types.SevHigh {
			sev = sevHighStyle
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s\n", sev.Render(strings.ToUpper(string(is.Severity))), is.Kind)
		fmt.Fprintf(&b, "id:      %s\n", is.ID)
		fmt.Fprintf(&b, "page:    %d\n", is.Page)
		fmt.Fprintf(&b, "detail:  %s\n", is.Detail)
		fmt.Fprintf(&b, "context: %s\n", is.Context)
		return b.String()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-14)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - 14
		}
		m.viewport.SetContent(m.viewportContent())
		return m, nil

	case spinner.TickMsg:
		if m.scanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case resultMsg:
		m.scanning = false
		if !m.session.Complete(msg.tok, msg.res) {
			// A newer scan superseded this one; drop the stale result.
			return m, nil
		}
		m.installResult(msg.res)
		m.statusMessage = fmt.Sprintf("Rescanned at %s | %s", time.Now().Format("15:04:05"), m.defaultStatus())
		return m, nil

	case scanErrMsg:
		m.scanning = false
		if !m.session.Live(msg.tok) {
			return m, nil
		}
		m.scanErr = msg.err.Error()
		m.statusMessage = "Scan failed: " + m.scanErr
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchMode = false
				m.searchQuery = m.searchInput.Value()
				m.applyFilters()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.SetValue("")
				m.clearFilters()
				return m, nil
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			m.viewMode = (m.viewMode + 1) % 3
			m.viewport.SetContent(m.viewportContent())
			m.viewport.GotoTop()
			return m, nil
		case "1":
			m.viewMode = ViewFindings
			m.viewport.SetContent(m.viewportContent())
			return m, nil
		case "2":
			m.viewMode = ViewSanitized
			m.viewport.SetContent(m.viewportContent())
			m.viewport.GotoTop()
			return m, nil
		case "3":
			m.viewMode = ViewProof
			m.viewport.SetContent(m.viewportContent())
			m.viewport.GotoTop()
			return m, nil
		case "/":
			if m.viewMode == ViewFindings {
				m.searchMode = true
				m.searchInput.Focus()
				return m, textinput.Blink
			}
			return m, nil
		case "f":
			if m.viewMode == ViewFindings {
				m.cycleSeverityFilter()
			}
			return m, nil
		case "esc":
			m.clearFilters()
			return m, nil
		case "r":
			if m.scanning {
				return m, nil
			}
			m.scanning = true
			m.scanErr = ""
			m.statusMessage = "Rescanning..."
			return m, tea.Batch(m.rescan(), m.spinner.Tick)
		case "c":
			return m, m.copyCurrentView()
		case "e":
			return m, m.exportCurrentView()
		}
	}

	if m.viewMode == ViewFindings {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport.SetContent(m.viewportContent())
	} else {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  initializing..."
	}

	title := fmt.Sprintf("docsentry — %s", m.result.FileName)
	verdict := "UNSAFE"
	if m.result.Safe {
		verdict = "SAFE"
	} else if m.result.IsEmpty {
		verdict = "EMPTY"
	}
	header := titleStyle.Render(fmt.Sprintf("%s  [%s]  pages: %d  issues: %d", title, verdict, m.result.PageCount, len(m.result.Issues)))

	tabs := make([]string, 0, 3)
	for _, v := range []ViewMode{ViewFindings, ViewSanitized, ViewProof} {
		label := v.label()
		if v == m.viewMode {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}
	tabLine := "  " + strings.Join(tabs, "  ")

	var body string
	switch {
	case m.scanning:
		body = emptyTextStyle.Width(m.width).Render("\n" + m.spinner.View() + " scanning...\n")
	case m.showHelp:
		body = detailStyle.Render(helpText)
	case m.viewMode == ViewFindings:
		if len(m.displayIssues()) == 0 {
			msg := "No issues found"
			if m.result.IsEmpty {
				msg = "Document has no extractable text"
			} else if m.searchQuery != "" || m.severityFilter != "" {
				msg = "No issues match the active filter"
			}
			body = emptyTextStyle.Width(m.width).Render("\n" + msg + "\n")
		} else {
			body = tableBorderStyle.Render(m.table.View()) + "\n" + detailStyle.Render(m.viewport.View())
		}
	default:
		body = detailStyle.Render(m.viewport.View())
	}

	status := m.statusMessage
	if m.searchMode {
		status = m.searchInput.View()
	} else if m.severityFilter != "" {
		status = fmt.Sprintf("filter: %s | %s", m.severityFilter, status)
	}

	return header + "\n" + tabLine + "\n" + body + "\n" + statusStyle.Width(m.width).Render(" "+status)
}

const helpText = `Keys

  tab / 1 2 3   switch view (findings, sanitized, proof)
  j/k, arrows   navigate findings
  /             search findings
  f             cycle severity filter
  esc           clear filters
  c             copy current view to clipboard
  e             export current view to a file
  r             rescan document
  ?             toggle this help
  q             quit`
