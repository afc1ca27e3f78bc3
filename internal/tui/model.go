// Package tui is the interactive session-history browser.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/exedev/tandem/internal/history"
)

type viewMode int

const (
	viewList viewMode = iota
	viewEntry
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubble Tea model for browsing session history.
type Model struct {
	entries []history.Entry

	// UI state
	cursor int
	mode   viewMode
	scroll int      // entry view offset from the top
	lines  []string // flattened lines of the open entry

	width  int
	height int

	quitting bool
}

// New creates a browser over the given entries.
func New(entries []history.Entry) Model {
	return Model{
		entries: entries,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.mode == viewEntry {
				if m.scroll > 0 {
					m.scroll--
				}
			} else if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.mode == viewEntry {
				if m.scroll < len(m.lines)-1 {
					m.scroll++
				}
			} else if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if m.mode == viewList && len(m.entries) > 0 {
				m.openEntry()
			}
		case "esc", "left", "h":
			if m.mode == viewEntry {
				m.mode = viewList
			}
		case "g":
			if m.mode == viewEntry {
				m.scroll = 0
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// openEntry flattens the selected entry into scrollable lines.
func (m *Model) openEntry() {
	e := m.entries[m.cursor]

	var lines []string
	add := func(label, text string) {
		lines = append(lines, labelStyle.Render(label))
		for _, raw := range strings.Split(text, "\n") {
			lines = append(lines, wrap(raw, m.width-2)...)
		}
		lines = append(lines, "")
	}
	add("Question", e.Question)
	add("DeepSeek Answer", e.FirstAnswer)
	add("Reasoning", e.FirstReasoning)
	add("Claude Answer", e.SecondAnswer)

	m.lines = lines
	m.scroll = 0
	m.mode = viewEntry
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == viewEntry {
		return m.entryView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" Session History (%d entries)", len(m.entries))))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(" No questions asked yet.\n")
		b.WriteString("\n" + helpStyle.Render(" q quit"))
		return b.String()
	}

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := start; i < end; i++ {
		e := m.entries[i]
		question := runewidth.Truncate(e.Question, m.width-18, "…")
		row := fmt.Sprintf(" %2d. %s  %s", i+1, e.AskedAt.Format("15:04:05"), question)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(">" + row[1:]))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render(" ↑/↓ move · enter open · q quit"))
	return b.String()
}

func (m Model) entryView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" Entry %d of %d · %s",
		m.cursor+1, len(m.entries), m.entries[m.cursor].AskedAt.Format("15:04:05"))))
	b.WriteString("\n\n")

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	end := m.scroll + visible
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.scroll:end] {
		b.WriteString(" " + line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(" ↑/↓ scroll · esc back · q quit"))
	return b.String()
}

// wrap hard-wraps a line to the given display width.
func wrap(s string, w int) []string {
	if w < 10 {
		w = 10
	}
	var out []string
	for runewidth.StringWidth(s) > w {
		cut := runewidth.Truncate(s, w, "")
		if cut == "" {
			break
		}
		out = append(out, cut)
		s = s[len(cut):]
	}
	return append(out, s)
}

// Run opens the browser and blocks until the user exits it.
func Run(entries []history.Entry) error {
	_, err := tea.NewProgram(New(entries), tea.WithAltScreen()).Run()
	return err
}
