package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/todo"
)

// OverviewModel shows every list with its item summary.
type OverviewModel struct {
	ctx   context.Context
	svc   *todo.Service
	theme Theme

	lists   model.Lists
	filter  route.Filter
	rows    list.Model
	input   inlineInput
	confirm bool
	preview bool
	status  string
	err     error

	width, height int
}

// NewOverview builds the overview with the given filter.
func NewOverview(ctx context.Context, svc *todo.Service, t Theme, f route.Filter) OverviewModel {
	m := OverviewModel{
		ctx:    ctx,
		svc:    svc,
		theme:  t,
		filter: f,
		rows:   newRowList(t, overviewHelp),
		input:  newInlineInput(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.layout()
	return m
}

// Init loads the document.
func (m OverviewModel) Init() tea.Cmd { return m.reload("") }

// Route is the overview's address, e.g. "/#pending".
func (m OverviewModel) Route() route.Route { return route.Route{Filter: m.filter} }

// Lists is the document as last loaded.
func (m OverviewModel) Lists() model.Lists { return m.lists }

func (m OverviewModel) reload(status string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		lists, err := svc.Lists(ctx)
		return listsMsg{lists: lists, status: status, err: err}
	}
}

// refresh reloads after an outside change without touching the status line.
func (m OverviewModel) refresh() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		lists, err := svc.Lists(ctx)
		return listsMsg{lists: lists, keep: true, err: err}
	}
}

// mutate runs fn off the event loop and reports the resulting document.
func (m OverviewModel) mutate(status string, fn func(context.Context) (model.Lists, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		lists, err := fn(ctx)
		return listsMsg{lists: lists, status: status, err: err}
	}
}

func (m OverviewModel) selected() (model.List, bool) {
	r, ok := m.rows.SelectedItem().(listRow)
	return r.list, ok
}

func (m *OverviewModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.layout()
}

// layout sizes the row list to what the header, footer and input leave.
func (m *OverviewModel) layout() {
	h := m.height - 8
	if m.input.active {
		h -= 4
	}
	w := m.width - 4
	if m.preview {
		w = w / 2
	}
	m.rows.SetSize(max(w, 10), max(h, 3))
}

func (m *OverviewModel) apply(lists model.Lists) tea.Cmd {
	m.lists = lists
	if m.lists.Counts().Done == 0 {
		m.confirm = false
	}
	return m.rows.SetItems(listRows(route.Apply(lists, m.filter, func(l model.List) bool { return l.Done })))
}

func (m *OverviewModel) setFilter(f route.Filter) tea.Cmd {
	m.filter = f
	m.rows.ResetSelected()
	return m.apply(m.lists)
}

// Update handles one message.
func (m OverviewModel) Update(msg tea.Msg) (OverviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case listsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if !msg.keep {
			m.status = msg.status
		}
		return m, m.apply(msg.lists)
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
			return m, m.mutate("created "+v, func(ctx context.Context) (model.Lists, error) {
				if _, err := m.svc.CreateList(ctx, v); err != nil {
					return nil, err
				}
				return m.svc.Lists(ctx)
			})
		}
		return m, m.mutate("renamed to "+v, func(ctx context.Context) (model.Lists, error) {
			return m.svc.RenameList(ctx, target, v)
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
			ctx, svc := m.ctx, m.svc
			return m, func() tea.Msg {
				lists, n, err := svc.ClearDoneLists(ctx)
				return listsMsg{lists: lists, status: fmt.Sprintf("cleared %d", n), err: err}
			}
		case "n", "N", "esc":
			m.confirm = false
		}
		return m, nil
	}

	sel, hasSel := m.selected()
	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Add):
		cmd := m.input.open("New to-do list", "List name...", "", 0)
		m.layout()
		return m, cmd
	case key.Matches(k, keys.Edit):
		if !hasSel {
			return m, nil
		}
		cmd := m.input.open("Rename to-do list", "List name...", sel.Name, sel.ID)
		m.layout()
		return m, cmd
	case key.Matches(k, keys.Toggle):
		if !hasSel {
			return m, nil
		}
		return m, m.mutate("toggled "+sel.Name, func(ctx context.Context) (model.Lists, error) {
			return m.svc.ToggleList(ctx, sel.ID)
		})
	case key.Matches(k, keys.Delete):
		if !hasSel {
			return m, nil
		}
		return m, m.mutate("deleted "+sel.Name, func(ctx context.Context) (model.Lists, error) {
			return m.svc.DeleteList(ctx, sel.ID)
		})
	case key.Matches(k, keys.ToggleAll):
		return m, m.mutate("toggled all", m.svc.ToggleAllLists)
	case key.Matches(k, keys.Clear):
		if m.lists.Counts().Done > 0 {
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
	case key.Matches(k, keys.Open):
		if !hasSel {
			return m, nil
		}
		id := sel.ID
		return m, func() tea.Msg { return OpenListMsg{ID: id} }
	case key.Matches(k, keys.Preview):
		m.preview = !m.preview
		m.layout()
		return m, nil
	case key.Matches(k, keys.Reload):
		return m, m.reload("reloaded")
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

// View renders the overview.
func (m OverviewModel) View() string {
	t := m.theme
	body := t.Muted.Render(NoListsText)
	if len(m.rows.Items()) > 0 {
		body = m.rows.View()
	}
	if m.preview {
		if sel, ok := m.selected(); ok {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", RenderPreview(sel, true, t))
		}
	}

	parts := []string{t.Title.Render("to-do lists"), "", body}
	if m.input.active {
		parts = append(parts, m.input.view(t))
	}
	parts = append(parts, "", t.Footer(m.lists.Counts(), m.filter), statusLine(t, m.status, m.err, m.confirm))
	return t.Frame().Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// statusLine shows, in order of priority, the clear prompt, an error or the
// last status message.
func statusLine(t Theme, status string, err error, confirm bool) string {
	switch {
	case confirm:
		return t.Error.Render(ConfirmText)
	case err != nil:
		return t.Error.Render(t.SymFail + " " + err.Error())
	case status != "":
		return t.Success.Render(t.SymDone + " " + status)
	}
	return ""
}
