package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/jsonlens/internal/datasource"
	"github.com/vanderheijden86/jsonlens/pkg/watcher"
)

// FieldLoadedMsg carries the outcome of a field fetch: either data or an
// upstream fetch error. The core never retries; a watcher change or a manual
// refresh triggers the next attempt.
type FieldLoadedMsg struct {
	Data datasource.FieldData
	Err  error
}

// FileChangedMsg is sent when the backing store changes on disk.
type FileChangedMsg struct{}

// LoadFieldCmd fetches the raw field text and its label off the UI loop.
func LoadFieldCmd(src datasource.RecordSource, recordID, field string) tea.Cmd {
	return func() tea.Msg {
		data, err := datasource.LoadField(context.Background(), src, recordID, field)
		return FieldLoadedMsg{Data: data, Err: err}
	}
}

// WatchFileCmd returns a command that waits for the next change notification
// and sends FileChangedMsg. Re-armed after every change.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}
