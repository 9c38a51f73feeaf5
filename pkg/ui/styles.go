package ui

import "github.com/charmbracelet/lipgloss"

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for contrast on white backgrounds
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	// Accent colors
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Value kind colors: how each JSON type reads in the tree
	ColorKindNull   = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#6272A4"}
	ColorKindBool   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorKindNumber = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorKindString = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorKindCont   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
)

// Expand affordance glyphs. Empty containers render neither.
const (
	GlyphCollapsed = "▸"
	GlyphExpanded  = "▾"
	GlyphLeaf      = " "
)

// Indent unit per nesting level, in characters.
const IndentWidth = 2
