package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow is one label/value pair in the post-run summary table.
type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary lays the rows out as a small two-column table, labels
// left-aligned and values right-aligned.
func RenderSummary(rows []SummaryRow) string {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Label))
		valueWidth = max(valueWidth, len(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)

	var b strings.Builder
	b.WriteString(hline)
	for _, row := range rows {
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, row.Label))
		value := valueStyle.Render(fmt.Sprintf("%*s", valueWidth, row.Value))
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString(" | ")
		b.WriteString(value)
	}
	b.WriteString("\n")
	b.WriteString(hline)
	return b.String()
}

var valueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInk)
