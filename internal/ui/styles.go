// Package ui holds the console styling for operator-facing output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Severity marks prefixing every status line.
const (
	CheckMark = "[OK]"
	CrossMark = "[!!]"
	WarnMark  = "[??]"
	InfoMark  = "[..]"
)

// IsInteractive reports whether stdout is a terminal. Styled output and
// prompts are only used interactively; pipes get plain text.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
