// tree.go - windowed rendering of the materialized JSON tree
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/jsonlens/pkg/jsontree"
)

// TreeView renders the flattened row list and tracks the cursor. It holds no
// document state of its own: every rebuild hands it a fresh row slice derived
// from the expansion set, and the view never mutates a row.
type TreeView struct {
	rows   []jsontree.DisplayNode
	cursor int
	offset int // index of first visible row
	width  int
	height int
	theme  Theme
}

// NewTreeView creates an empty tree view.
func NewTreeView(theme Theme) TreeView {
	return TreeView{theme: theme}
}

// SetSize updates the available dimensions for the tree area.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetRows replaces the visible rows after a re-materialization, keeping the
// cursor on the same node id when it still exists (best-effort; rows from a
// reshaped document may not contain it).
func (t *TreeView) SetRows(rows []jsontree.DisplayNode) {
	prevID := ""
	if sel, ok := t.Selected(); ok {
		prevID = sel.ID
	}

	t.rows = rows

	if prevID != "" {
		for i := range t.rows {
			if t.rows[i].ID == prevID {
				t.cursor = i
				t.ensureCursorVisible()
				return
			}
		}
	}
	t.clampCursor()
	t.ensureCursorVisible()
}

// Rows returns the current flattened rows.
func (t *TreeView) Rows() []jsontree.DisplayNode { return t.rows }

// Selected returns the row under the cursor.
func (t *TreeView) Selected() (jsontree.DisplayNode, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return jsontree.DisplayNode{}, false
	}
	return t.rows[t.cursor], true
}

// Cursor returns the current cursor index.
func (t *TreeView) Cursor() int { return t.cursor }

// CursorUp moves the cursor one row up.
func (t *TreeView) CursorUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureCursorVisible()
}

// CursorDown moves the cursor one row down.
func (t *TreeView) CursorDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
	t.ensureCursorVisible()
}

// CursorTop jumps to the first row.
func (t *TreeView) CursorTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// CursorBottom jumps to the last row.
func (t *TreeView) CursorBottom() {
	t.cursor = len(t.rows) - 1
	t.clampCursor()
	t.ensureCursorVisible()
}

// PageDown moves the cursor a page forward.
func (t *TreeView) PageDown() {
	t.cursor += t.pageSize()
	t.clampCursor()
	t.ensureCursorVisible()
}

// PageUp moves the cursor a page back.
func (t *TreeView) PageUp() {
	t.cursor -= t.pageSize()
	t.clampCursor()
	t.ensureCursorVisible()
}

func (t *TreeView) pageSize() int {
	if t.height > 1 {
		return t.height - 1
	}
	return 1
}

func (t *TreeView) clampCursor() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *TreeView) ensureCursorVisible() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// visibleRange returns the window of rows to render.
func (t *TreeView) visibleRange() (int, int) {
	start := t.offset
	end := start + t.height
	if t.height <= 0 {
		end = len(t.rows)
	}
	if end > len(t.rows) {
		end = len(t.rows)
	}
	if start > end {
		start = end
	}
	return start, end
}

// View renders the visible window of rows.
func (t *TreeView) View() string {
	if len(t.rows) == 0 {
		return t.theme.Muted.Render("  (no data)")
	}

	var sb strings.Builder
	start, end := t.visibleRange()

	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i], i == t.cursor)
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	// Position indicator only when scrolling is possible
	if t.height > 0 && len(t.rows) > t.height {
		sb.WriteString("\n")
		sb.WriteString(t.renderPositionIndicator(start, end))
	}

	return sb.String()
}

// renderRow renders one row: indent, expand affordance, key, value summary.
func (t *TreeView) renderRow(row jsontree.DisplayNode, selected bool) string {
	glyph := GlyphLeaf
	if row.Expandable {
		if row.Expanded {
			glyph = GlyphExpanded
		} else {
			glyph = GlyphCollapsed
		}
	}

	indent := strings.Repeat(" ", row.Depth*IndentWidth)

	if selected {
		// One flat style for the whole line so the highlight is unbroken.
		line := fmt.Sprintf("%s%s %s: %s", indent, glyph, row.DisplayKey, row.ValueSummary)
		if row.DisplayKey == "" {
			line = fmt.Sprintf("%s%s %s", indent, glyph, row.ValueSummary)
		}
		if t.width > 0 {
			line = padRight(truncate(line, t.width), t.width)
		}
		return t.theme.Selected.Render(line)
	}

	value := t.valueStyle(row).Render(row.ValueSummary)
	if row.DisplayKey == "" {
		return fmt.Sprintf("%s%s %s", indent, t.theme.Glyph.Render(glyph), value)
	}
	key := t.theme.Key.Render(row.DisplayKey)
	return fmt.Sprintf("%s%s %s: %s", indent, t.theme.Glyph.Render(glyph), key, value)
}

func (t *TreeView) valueStyle(row jsontree.DisplayNode) lipgloss.Style {
	switch row.ValueKind {
	case jsontree.KindNull:
		return t.theme.Null
	case jsontree.KindBool:
		return t.theme.Bool
	case jsontree.KindNumber:
		return t.theme.Number
	case jsontree.KindString:
		return t.theme.String
	default:
		return t.theme.Cont
	}
}

// renderPositionIndicator shows "start-end of total" when the window scrolls.
func (t *TreeView) renderPositionIndicator(start, end int) string {
	indicator := fmt.Sprintf(" %d-%d of %d", start+1, end, len(t.rows))
	return t.theme.Muted.Render(indicator)
}
