package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk    = lipgloss.Color("#EBDBB2")
	ColorDim    = lipgloss.Color("#928374")
	ColorAccent = lipgloss.Color("#83A598")
	ColorWarn   = lipgloss.Color("#FABD2F")
)
