package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/todo"
)

// EditorModel edits the items of one list.
type EditorModel struct {
	ctx   context.Context
	svc   *todo.Service
	theme Theme

	id      int64
	list    model.List
	found   bool
	loaded  bool
	filter  route.Filter
	rows    list.Model
	input   inlineInput
	confirm bool
	status  string
	err     error

	width, height int
}

// NewEditor builds the editor for list id.
func NewEditor(ctx context.Context, svc *todo.Service, t Theme, id int64, f route.Filter) EditorModel {
	m := EditorModel{
		ctx:    ctx,
		svc:    svc,
		theme:  t,
		id:     id,
		filter: f,
		rows:   newRowList(t, editorHelp),
		input:  newInlineInput(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.layout()
	return m
}

// Init loads the list.
func (m EditorModel) Init() tea.Cmd { return m.reload("") }

// Route is the editor's address, e.g. "/to-do-list/42#done".
func (m EditorModel) Route() route.Route { return route.Route{ListID: m.id, Filter: m.filter} }

// List is the list as last loaded and whether it exists.
func (m EditorModel) List() (model.List, bool) { return m.list, m.found }

func (m EditorModel) reload(status string) tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.id
	return func() tea.Msg {
		l, err := svc.List(ctx, id)
		return toListMsg(id, l, status, err)
	}
}

// refresh reloads after an outside change without touching the status line.
func (m EditorModel) refresh() tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.id
	return func() tea.Msg {
		l, err := svc.List(ctx, id)
		msg := toListMsg(id, l, "", err)
		msg.keep = true
		return msg
	}
}

func (m EditorModel) mutate(status string, fn func(context.Context) (model.List, error)) tea.Cmd {
	ctx, id := m.ctx, m.id
	return func() tea.Msg {
		l, err := fn(ctx)
		return toListMsg(id, l, status, err)
	}
}

// toListMsg folds a missing list into found=false instead of an error.
func toListMsg(id int64, l model.List, status string, err error) listMsg {
	if errors.Is(err, model.ErrListNotFound) {
		return listMsg{id: id}
	}
	return listMsg{id: id, list: l, found: err == nil, status: status, err: err}
}

func (m EditorModel) selected() (model.Item, bool) {
	r, ok := m.rows.SelectedItem().(itemRow)
	return r.item, ok
}

func (m *EditorModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.layout()
}

func (m *EditorModel) layout() {
	h := m.height - 8
	if m.input.active {
		h -= 4
	}
	m.rows.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m *EditorModel) apply(l model.List, found bool) tea.Cmd {
	m.list, m.found, m.loaded = l, found, true
	if l.Counts().Done == 0 {
		m.confirm = false
	}
	return m.rows.SetItems(itemRows(route.Apply(l.Items, m.filter, func(it model.Item) bool { return it.Done })))
}

func (m *EditorModel) setFilter(f route.Filter) tea.Cmd {
	m.filter = f
	m.rows.ResetSelected()
	return m.apply(m.list, m.found)
}

// Update handles one message.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case listMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if !msg.keep {
			m.status = msg.status
		}
		return m, m.apply(msg.list, msg.found)
	}

	if m.input.active {
		res, v, cmd := m.input.update(msg)
		if res != inputSubmitted {
			m.layout()
			return m, cmd
		}
		target := m.input.target
		m.input.close()
		m.layout()
		if target == 0 {
			return m, m.mutate("added "+v, func(ctx context.Context) (model.List, error) {
				if _, err := m.svc.AddItem(ctx, m.id, v); err != nil {
					return model.List{}, err
				}
				return m.svc.List(ctx, m.id)
			})
		}
		return m, m.mutate("edited", func(ctx context.Context) (model.List, error) {
			return m.svc.EditItem(ctx, m.id, target, v)
		})
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	if m.confirm {
		switch k.String() {
		case "y", "Y":
			m.confirm = false
			ctx, svc, id := m.ctx, m.svc, m.id
			return m, func() tea.Msg {
				l, n, err := svc.ClearDoneItems(ctx, id)
				return toListMsg(id, l, fmt.Sprintf("cleared %d", n), err)
			}
		case "n", "N", "esc":
			m.confirm = false
		}
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}
	// An unknown list accepts no edits.
	if !m.found {
		return m, nil
	}

	sel, hasSel := m.selected()
	switch {
	case key.Matches(k, keys.Add):
		cmd := m.input.open("New item", "What needs to be done?", "", 0)
		m.layout()
		return m, cmd
	case key.Matches(k, keys.Edit):
		if !hasSel {
			return m, nil
		}
		cmd := m.input.open("Edit item", "What needs to be done?", sel.Text, sel.ID)
		m.layout()
		return m, cmd
	case key.Matches(k, keys.Toggle):
		if !hasSel {
			return m, nil
		}
		return m, m.mutate("toggled", func(ctx context.Context) (model.List, error) {
			return m.svc.ToggleItem(ctx, m.id, sel.ID)
		})
	case key.Matches(k, keys.Delete):
		if !hasSel {
			return m, nil
		}
		return m, m.mutate("deleted", func(ctx context.Context) (model.List, error) {
			return m.svc.DeleteItem(ctx, m.id, sel.ID)
		})
	case key.Matches(k, keys.ToggleAll):
		return m, m.mutate("toggled all", func(ctx context.Context) (model.List, error) {
			return m.svc.ToggleAllItems(ctx, m.id)
		})
	case key.Matches(k, keys.Clear):
		if m.list.Counts().Done > 0 {
			m.confirm = true
		}
		return m, nil
	case key.Matches(k, keys.Filter):
		return m, m.setFilter(m.filter.Next())
	case key.Matches(k, keys.All):
		return m, m.setFilter(route.All)
	case key.Matches(k, keys.Pending):
		return m, m.setFilter(route.Pending)
	case key.Matches(k, keys.Done):
		return m, m.setFilter(route.Done)
	case key.Matches(k, keys.Reload):
		return m, m.reload("reloaded")
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

// View renders the editor.
func (m EditorModel) View() string {
	t := m.theme
	if m.loaded && !m.found {
		return t.Frame().Render(lipgloss.JoinVertical(lipgloss.Left,
			t.Muted.Render("to-do list"), "", t.Error.Render(InvalidEditorText), "",
			t.Help.Render("esc back • q quit")))
	}

	body := t.Muted.Render(EmptyListText)
	if len(m.rows.Items()) > 0 {
		body = m.rows.View()
	}
	parts := []string{t.Muted.Render("to-do list"), t.Title.Inherit(stateStyle(t, m.list.Done)).Render(m.list.Name), "", body}
	if m.input.active {
		parts = append(parts, m.input.view(t))
	}
	parts = append(parts, "", t.Footer(m.list.Counts(), m.filter), statusLine(t, m.status, m.err, m.confirm))
	return t.Frame().Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
