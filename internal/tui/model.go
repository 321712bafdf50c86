// Package tui renders the live progress display and the post-run summary.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"filesize/internal/sizer"
)

// Model accumulates sizer.Progress deltas into a live scan display. The
// display quits on its own once the updates channel is closed.
type Model struct {
	updates    <-chan sizer.Progress
	started    time.Time
	width      int
	totalPaths int
	paths      int
	files      int
	errors     int
	bytes      int64
	current    string
	quitting   bool
}

type doneMsg struct{}

type updateMsg sizer.Progress

// NewModel returns a model fed by updates; totalPaths scales the progress
// bar, one unit per requested path.
func NewModel(updates <-chan sizer.Progress, totalPaths int) Model {
	return Model{updates: updates, totalPaths: totalPaths, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.paths += msg.PathsDelta
		m.files += msg.FilesDelta
		m.errors += msg.ErrorsDelta
		m.bytes += msg.BytesDelta
		if msg.Current != "" {
			m.current = msg.Current
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = min(60, m.width-10)
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.totalPaths > 0 {
		ratio = float64(m.paths) / float64(m.totalPaths)
		if ratio > 1 {
			ratio = 1
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("filesize"),
		labelStyle.Render(fmt.Sprintf("Paths: %d/%d", m.paths, m.totalPaths)) + dimStyle.Render(fmt.Sprintf("  errors:%d", m.errors)),
		labelStyle.Render(fmt.Sprintf("Files counted: %d", m.files)),
		labelStyle.Render(fmt.Sprintf("Scanned: %s", humanize.IBytes(uint64(m.bytes)))),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
	}
	if m.current != "" {
		lines = append(lines, dimStyle.Render(truncate(m.current, barWidth+2)))
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan sizer.Progress) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
