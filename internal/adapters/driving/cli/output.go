package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// styles holds the lipgloss styles for command output.
// Output that is not a terminal gets unstyled text.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	score   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{title: plain, label: plain, score: plain, muted: plain, success: plain, failure: plain}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		score:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
