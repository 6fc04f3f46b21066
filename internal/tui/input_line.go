package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a labelled single-line input on the input background.
func renderInputLine(width int, label, inputView string) string {
	if width < 10 {
		width = 10
	}

	// A textinput view must stay on one visual line or typing looks like newline insertion.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	if label != "" {
		label = styleMuted().Render(label) + " "
	}
	bodyW := width - xansi.StringWidth(label)
	if bodyW < 4 {
		bodyW = 4
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate styling so the cut line does not bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return label + line
}
