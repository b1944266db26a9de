package ui

import "github.com/charmbracelet/bubbles/key"

type keyBinding = key.Binding

type keyMap struct {
	Add, Edit, Toggle, Delete, ToggleAll, Clear key.Binding
	Filter, All, Pending, Done                  key.Binding
	Open, Preview, Reload, Back, Quit           key.Binding
}

var keys = keyMap{
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	ToggleAll: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle all")),
	Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
	Filter:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
	All:       key.NewBinding(key.WithKeys("1")),
	Pending:   key.NewBinding(key.WithKeys("2")),
	Done:      key.NewBinding(key.WithKeys("3")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func overviewHelp() []key.Binding {
	return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete, keys.ToggleAll,
		keys.Clear, keys.Filter, keys.Open, keys.Preview, keys.Quit}
}

func editorHelp() []key.Binding {
	return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete, keys.ToggleAll,
		keys.Clear, keys.Filter, keys.Back, keys.Quit}
}
