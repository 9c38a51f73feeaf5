package ui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/vanderheijden86/jsonlens/internal/datasource"
	"github.com/vanderheijden86/jsonlens/pkg/config"
	"github.com/vanderheijden86/jsonlens/pkg/debug"
	"github.com/vanderheijden86/jsonlens/pkg/jsontree"
	"github.com/vanderheijden86/jsonlens/pkg/metrics"
	"github.com/vanderheijden86/jsonlens/pkg/watcher"
)

// Layout constants: header takes two lines, status bar one.
const (
	headerHeight = 2
	statusHeight = 1
)

// Options wires the model to its collaborators. Everything is optional:
// a model without a source just renders whatever FieldLoadedMsg delivers,
// which is also how tests drive it.
type Options struct {
	Source     datasource.RecordSource
	RecordID   string
	Field      string
	SourcePath string
	Watcher    *watcher.Watcher
	Config     config.Config
}

// Model is the top-level bubbletea model for the viewer.
type Model struct {
	theme Theme
	tree  TreeView

	// Document state: the raw-text boundary plus the expansion controller.
	// The controller's set is the only state that survives a rebuild.
	doc  jsontree.Document
	ctrl *jsontree.Controller

	source     datasource.RecordSource
	recordID   string
	field      string
	label      string
	sourcePath string
	w          *watcher.Watcher
	cfg        config.Config

	width  int
	height int

	loading   bool
	firstLoad bool
	fetchErr  string

	statusMsg     string
	statusIsError bool

	showHelp bool
	helpView viewport.Model

	// copyFn is swappable for tests; defaults to the real clipboard path.
	copyFn func(string) error
}

// NewModel creates the viewer model. The model is initialized as ready with
// default dimensions so the first WindowSizeMsg only refines the layout.
func NewModel(opts Options) Model {
	theme := NewTheme(nil)
	label := opts.Field
	if label == "" {
		label = "document"
	}
	m := Model{
		theme:      theme,
		tree:       NewTreeView(theme),
		ctrl:       jsontree.NewController(),
		source:     opts.Source,
		recordID:   opts.RecordID,
		field:      opts.Field,
		label:      label,
		sourcePath: opts.SourcePath,
		w:          opts.Watcher,
		cfg:        opts.Config,
		width:      120,
		height:     40,
		firstLoad:  true,
		copyFn:     clipboard.WriteAll,
	}
	m.loading = opts.Source != nil
	m.tree.SetSize(m.width, m.bodyHeight())
	m.helpView = viewport.New(m.width, m.bodyHeight())
	return m
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - statusHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.source != nil {
		cmds = append(cmds, LoadFieldCmd(m.source, m.recordID, m.field))
	}
	if m.w != nil {
		cmds = append(cmds, WatchFileCmd(m.w))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.SetSize(m.width, m.bodyHeight())
		m.helpView.Width = m.width
		m.helpView.Height = m.bodyHeight()
		if m.showHelp {
			m.helpView.SetContent(renderHelp(m.width))
		}

	case FieldLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Upstream fetch error: surface as-is, force the tree empty.
			// The expansion set is kept; it simply has nothing to match.
			m.fetchErr = msg.Err.Error()
			m.doc = jsontree.NewDocument("")
			m.rebuild()
			return m, tea.Batch(cmds...)
		}
		m.fetchErr = ""
		if msg.Data.Label != "" {
			m.label = msg.Data.Label
		}
		raw := msg.Data.Value.Text
		if msg.Data.Value.Null {
			raw = ""
		}
		parseDone := metrics.Timer(metrics.JSONParse)
		m.doc = jsontree.NewDocument(raw)
		parseDone()
		if m.firstLoad && m.cfg.UI.ExpandDepth > 0 {
			m.ctrl.ExpandToDepth(m.doc.Value(), m.cfg.UI.ExpandDepth)
		}
		m.firstLoad = false
		debug.Log("field loaded: %d bytes, payload=%v", len(raw), m.doc.HasPayload())
		m.rebuild()

	case FileChangedMsg:
		// Refetch and re-derive; the expansion set carries over so matching
		// node ids stay expanded and stale ids are inert.
		if m.source != nil {
			m.loading = true
			cmds = append(cmds, LoadFieldCmd(m.source, m.recordID, m.field))
		}
		if m.w != nil {
			cmds = append(cmds, WatchFileCmd(m.w))
		}

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		return m.updateKeys(msg)
	}

	return m, tea.Batch(cmds...)
}

// updateHelp handles keys while the help overlay is open.
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

// updateKeys handles keys in the normal tree view.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any keypress clears a transient status message.
	m.statusMsg = ""
	m.statusIsError = false

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		m.helpView.SetContent(renderHelp(m.width))
		m.helpView.GotoTop()

	case "j", "down":
		m.tree.CursorDown()
	case "k", "up":
		m.tree.CursorUp()
	case "g", "home":
		m.tree.CursorTop()
	case "G", "end":
		m.tree.CursorBottom()
	case "ctrl+d", "pgdown":
		m.tree.PageDown()
	case "ctrl+u", "pgup":
		m.tree.PageUp()

	case "enter", " ", "l", "h":
		if row, ok := m.tree.Selected(); ok && row.Expandable {
			m.ctrl.Toggle(row.ID)
			m.rebuild()
		}

	case "E":
		m.ctrl.ToggleAll(m.doc.Value())
		m.rebuild()

	case "r":
		if m.source != nil {
			m.loading = true
			return m, LoadFieldCmd(m.source, m.recordID, m.field)
		}

	case "c":
		m.copyToClipboard(m.doc.Pretty(), "document")

	case "y":
		if row, ok := m.tree.Selected(); ok {
			path := jsontree.PathFromID(row.ID, row.Depth)
			m.copyToClipboard(path, "path")
		}

	case "Y":
		if row, ok := m.tree.Selected(); ok {
			path := jsontree.PathFromID(row.ID, row.Depth)
			if v, found := m.doc.Value().Lookup(path); found {
				m.copyToClipboard(v.IndentJSON(jsontree.PrettyIndent), "subtree")
			}
		}
	}

	return m, nil
}

// rebuild re-materializes the display tree from the current document and
// expansion set. There is no incremental patch path: every mutation runs
// through here.
func (m *Model) rebuild() {
	defer metrics.Timer(metrics.TreeMaterialize)()
	rows := jsontree.Flatten(jsontree.Materialize(m.doc.Value(), m.ctrl.Expanded()))
	m.tree.SetRows(rows)
}

// copyToClipboard writes text via the system clipboard, falling back to an
// OSC52 escape sequence for terminals without one. Both failing produces a
// visible status-bar error, never a fault.
func (m *Model) copyToClipboard(text, what string) {
	if err := m.copyFn(text); err == nil {
		m.statusMsg = fmt.Sprintf("📋 Copied %s to clipboard", what)
		m.statusIsError = false
		return
	}
	if m.oscCopy(text) {
		m.statusMsg = fmt.Sprintf("📋 Copied %s (OSC52)", what)
		m.statusIsError = false
		return
	}
	m.statusMsg = "Copy failed: no clipboard available"
	m.statusIsError = true
}

// oscCopy emits an OSC52 copy sequence. Only attempted on a terminal; the
// sequence is write-only, so reaching the terminal counts as success.
func (m *Model) oscCopy(text string) bool {
	fi, err := os.Stdout.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	termenv.NewOutput(os.Stdout).Copy(text)
	return true
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	header := m.renderHeader()
	status := m.renderStatusBar()

	body := m.tree.View()
	if m.showHelp {
		body = m.helpView.View()
	}

	return header + "\n" + body + "\n" + status
}

// renderHeader shows the field label and source location.
func (m Model) renderHeader() string {
	if m.cfg.UI.Headless {
		return ""
	}
	loc := ""
	if m.sourcePath != "" {
		loc = "  " + m.sourcePath
	}
	if m.w != nil {
		loc += "  (watching)"
	}
	title := truncate(m.label, m.width)
	loc = truncate(loc, m.width-runewidth.StringWidth(title))
	return m.theme.Header.Render(title) + m.theme.Muted.Render(loc) +
		"\n" + m.theme.Muted.Render(m.renderCounts())
}

func (m Model) renderCounts() string {
	if m.loading {
		return "loading…"
	}
	if !m.HasPayload() {
		return "no data"
	}
	return fmt.Sprintf("%d rows", len(m.tree.Rows()))
}

// renderStatusBar shows, in priority order: errors, transient messages, and
// the toggle-all hint whose label follows the advisory all-expanded flag.
func (m Model) renderStatusBar() string {
	if msg := m.ErrorMessage(); msg != "" {
		return m.theme.Error.Render(truncate(msg, m.width))
	}
	if m.statusMsg != "" {
		style := m.theme.Success
		if m.statusIsError {
			style = m.theme.Error
		}
		return style.Render(truncate(m.statusMsg, m.width))
	}
	return m.theme.Status.Render(truncate(m.toggleAllHint()+"  ? help  q quit", m.width))
}

// toggleAllHint picks the toggle-all label from the advisory flag; it is not
// recomputed from the actual tree state after a manual toggle.
func (m Model) toggleAllHint() string {
	if m.ctrl.AllExpanded() {
		return "E collapse all"
	}
	return "E expand all"
}

// ErrorMessage returns the current error surface: a fetch error, or a parse
// error. Empty when healthy. Cleared by the next successful load.
func (m Model) ErrorMessage() string {
	if m.fetchErr != "" {
		return m.fetchErr
	}
	return m.doc.Err()
}

// HasPayload reports whether the current document produced at least one row
// and no error is set.
func (m Model) HasPayload() bool {
	return m.ErrorMessage() == "" && m.doc.HasPayload()
}

// Rows exposes the current flattened rows, for tests and the robot mode.
func (m Model) Rows() []jsontree.DisplayNode { return m.tree.Rows() }

// Selected exposes the row under the cursor.
func (m Model) Selected() (jsontree.DisplayNode, bool) { return m.tree.Selected() }

// AllExpanded exposes the advisory toggle-all state.
func (m Model) AllExpanded() bool { return m.ctrl.AllExpanded() }

// HelpOpen reports whether the help overlay is showing.
func (m Model) HelpOpen() bool { return m.showHelp }

// SetCopyFunc replaces the primary clipboard mechanism (used by tests).
func (m *Model) SetCopyFunc(fn func(string) error) { m.copyFn = fn }

// StatusMessage exposes the transient status line (used by tests).
func (m Model) StatusMessage() (string, bool) { return m.statusMsg, m.statusIsError }
