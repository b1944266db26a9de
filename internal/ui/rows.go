package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

// listRow adapts a model.List to bubbles/list.Item.
type listRow struct{ list model.List }

func (r listRow) Title() string       { return r.list.Name }
func (r listRow) Description() string { return ItemSummary(r.list) }
func (r listRow) FilterValue() string { return r.list.Name }

// itemRow adapts a model.Item to bubbles/list.Item.
type itemRow struct{ item model.Item }

func (r itemRow) Title() string       { return r.item.Text }
func (r itemRow) Description() string { return "" }
func (r itemRow) FilterValue() string { return r.item.Text }

// rowDelegate renders both row kinds on a single line.
type rowDelegate struct{ theme Theme }

func (d rowDelegate) Height() int                         { return 1 }
func (d rowDelegate) Spacing() int                        { return 0 }
func (d rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	var line string
	switch r := item.(type) {
	case listRow:
		line = ListLine(d.theme, r.list)
	case itemRow:
		line = ItemLine(d.theme, r.item)
	default:
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+line)
}

func newRowList(t Theme, help func() []keyBinding) list.Model {
	l := list.New(nil, rowDelegate{theme: t}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.AdditionalShortHelpKeys = help
	l.AdditionalFullHelpKeys = help
	return l
}

func listRows(lists model.Lists) []list.Item {
	out := make([]list.Item, 0, len(lists))
	for _, l := range lists {
		out = append(out, listRow{list: l})
	}
	return out
}

func itemRows(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, itemRow{item: it})
	}
	return out
}
