package ui

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// renderHelp renders the embedded key reference through glamour. Falls back
// to the raw markdown if the renderer can't be built (e.g. weird TERM).
func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
