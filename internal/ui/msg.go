package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

// listsMsg carries the reloaded document to the overview. keep leaves the
// current status line alone.
type listsMsg struct {
	lists  model.Lists
	status string
	keep   bool
	err    error
}

// listMsg carries one reloaded list to the editor.
type listMsg struct {
	id     int64
	list   model.List
	found  bool
	status string
	keep   bool
	err    error
}

// OpenListMsg switches the app to the editor for ID.
type OpenListMsg struct{ ID int64 }

// BackMsg returns the app to the overview.
type BackMsg struct{}

// StoreChangedMsg reports that the stored document changed on disk.
type StoreChangedMsg struct{}

// waitForChange turns one watcher event into a StoreChangedMsg. A closed or
// nil channel yields no message.
func waitForChange(events <-chan struct{}) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}
