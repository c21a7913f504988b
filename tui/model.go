// Package tui renders a live-updating dashboard of the busiest digests seen
// by a running sql-digestd.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mickamy/sql-tap/clipboard"
	"github.com/mickamy/sql-tap/digest"
	"github.com/mickamy/sql-tap/highlight"
	"github.com/mickamy/sql-tap/stats"
)

// Sample is one digested statement, as fed to the dashboard by the CLI's
// reader loop.
type Sample struct {
	Raw    string
	Result digest.Result
}

// Model is the Bubble Tea model for the sql-digestd dashboard.
type Model struct {
	tracker *stats.Tracker
	samples <-chan Sample

	rows   []stats.Entry
	cursor int
	width  int
	height int

	filterMode  bool
	filterQuery string

	copiedAt time.Time
}

// New creates a Model that records every Sample received on samples into
// tracker and renders tracker's top entries.
func New(tracker *stats.Tracker, samples <-chan Sample) Model {
	return Model{tracker: tracker, samples: samples}
}

type sampleMsg struct{ s Sample }

type samplesClosedMsg struct{}

func listen(samples <-chan Sample) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-samples
		if !ok {
			return samplesClosedMsg{}
		}
		return sampleMsg{s: s}
	}
}

// Init starts listening for samples.
func (m Model) Init() tea.Cmd {
	return listen(m.samples)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sampleMsg:
		m.tracker.Record(msg.s.Result, msg.s.Raw, time.Now())
		m.refreshRows()
		return m, listen(m.samples)

	case samplesClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m *Model) refreshRows() {
	rows := m.tracker.Top(0)
	if m.filterQuery != "" {
		lower := strings.ToLower(m.filterQuery)
		filtered := rows[:0:0]
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.Digest), lower) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if len(m.rows) > 0 && m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "c":
		return m.copySelected(), nil
	case "/":
		m.filterMode = true
		return m, nil
	case "esc":
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.refreshRows()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filterMode = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "backspace":
		if len(m.filterQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.filterQuery)
			m.filterQuery = m.filterQuery[:len(m.filterQuery)-size]
			m.refreshRows()
		}
		return m, nil
	}

	r := msg.Runes
	if len(r) == 0 {
		return m, nil
	}
	m.filterQuery += string(r)
	m.refreshRows()
	return m, nil
}

func (m Model) copySelected() Model {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return m
	}
	if err := clipboard.Copy(context.Background(), m.rows[m.cursor].Digest); err == nil {
		m.copiedAt = time.Now()
	}
	return m
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	rankStyle   = lipgloss.NewStyle().Faint(true)
	selStyle    = lipgloss.NewStyle().Reverse(true)
)

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if len(m.rows) == 0 {
		return "Waiting for queries..."
	}

	digestWidth := max(m.width-24, 10)
	header := headerStyle.Render(fmt.Sprintf("  %s  %s  %s  %s",
		padLeft("#", 4), padLeft("count", 7), padRight("digest", digestWidth), "last seen"))

	var lines []string
	lines = append(lines, header)
	for i, row := range m.rows {
		digestCol := highlight.Digest(truncate(row.Digest, digestWidth))
		line := fmt.Sprintf("  %s  %s  %s  %s",
			rankStyle.Render(padLeft(fmt.Sprintf("%d", i+1), 4)),
			padLeft(fmt.Sprintf("%d", row.Count), 7),
			padRight(digestCol, digestWidth),
			formatTime(row.LastSeen))
		if i == m.cursor {
			line = selStyle.Render(line)
		}
		lines = append(lines, line)
	}

	var footer string
	switch {
	case m.filterMode:
		footer = "  / " + renderInputWithCursor(m.filterQuery, len([]rune(m.filterQuery)))
	case !m.copiedAt.IsZero() && time.Since(m.copiedAt) < 2*time.Second:
		footer = "  copied digest to clipboard"
	default:
		footer = "  q: quit  j/k: navigate  c: copy digest  /: filter"
	}
	lines = append(lines, footer)

	return strings.Join(lines, "\n")
}
