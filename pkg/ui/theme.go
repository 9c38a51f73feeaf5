package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return c
}

// ThemeFg returns the given color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return c
}

// Theme bundles the styles the viewer renders with. Constructed once and
// passed down; components never detect colors themselves.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Base styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style

	// Tree row pieces
	Key    lipgloss.Style
	Glyph  lipgloss.Style
	Null   lipgloss.Style
	Bool   lipgloss.Style
	Number lipgloss.Style
	String lipgloss.Style
	Cont   lipgloss.Style
}

// NewTheme builds the default theme against the given renderer. Pass nil to
// use the default (stdout) renderer.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer: r,

		Base:     r.NewStyle().Foreground(ColorText),
		Selected: r.NewStyle().Background(ThemeBg(ColorBgHighlight)).Foreground(ColorText).Bold(true),
		Muted:    r.NewStyle().Foreground(ColorMuted),
		Error:    r.NewStyle().Foreground(ColorDanger).Bold(true),
		Success:  r.NewStyle().Foreground(ColorSuccess),
		Header:   r.NewStyle().Foreground(ThemeFg(ColorPrimary)).Bold(true),
		Status:   r.NewStyle().Foreground(ColorSubtext),

		Key:    r.NewStyle().Foreground(ColorText),
		Glyph:  r.NewStyle().Foreground(ThemeFg(ColorPrimary)),
		Null:   r.NewStyle().Foreground(ThemeFg(ColorKindNull)).Italic(true),
		Bool:   r.NewStyle().Foreground(ThemeFg(ColorKindBool)),
		Number: r.NewStyle().Foreground(ThemeFg(ColorKindNumber)),
		String: r.NewStyle().Foreground(ThemeFg(ColorKindString)),
		Cont:   r.NewStyle().Foreground(ThemeFg(ColorKindCont)),
	}
}
