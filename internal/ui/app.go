package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/todo"
)

// AppModel switches between the overview and one list's editor.
type AppModel struct {
	ctx    context.Context
	svc    *todo.Service
	theme  Theme
	events <-chan struct{}

	overview OverviewModel
	editor   EditorModel
	editing  bool

	width, height int
}

// NewApp starts at r. events, when non-nil, delivers store change
// notifications that trigger a reload.
func NewApp(ctx context.Context, svc *todo.Service, t Theme, r route.Route, events <-chan struct{}) AppModel {
	m := AppModel{
		ctx:      ctx,
		svc:      svc,
		theme:    t,
		events:   events,
		overview: NewOverview(ctx, svc, t, route.All),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if r.Overview() {
		m.overview = NewOverview(ctx, svc, t, r.Filter)
	} else {
		m.editor = NewEditor(ctx, svc, t, r.ListID, r.Filter)
		m.editing = true
	}
	return m
}

// Route is the address of the active view.
func (m AppModel) Route() route.Route {
	if m.editing {
		return m.editor.Route()
	}
	return m.overview.Route()
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.overview.Init(), waitForChange(m.events)}
	if m.editing {
		cmds = append(cmds, m.editor.Init())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.overview.setSize(msg.Width, msg.Height)
		m.editor.setSize(msg.Width, msg.Height)
		return m, nil
	case listsMsg:
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	case listMsg:
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	case OpenListMsg:
		m.editor = NewEditor(m.ctx, m.svc, m.theme, msg.ID, route.All)
		m.editor.setSize(m.width, m.height)
		m.editing = true
		return m, m.editor.Init()
	case BackMsg:
		m.editing = false
		return m, m.overview.reload("")
	case StoreChangedMsg:
		cmds := []tea.Cmd{m.overview.refresh(), waitForChange(m.events)}
		if m.editing {
			cmds = append(cmds, m.editor.refresh())
		}
		return m, tea.Batch(cmds...)
	}

	if m.editing {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

func (m AppModel) View() string {
	if m.editing {
		return m.editor.View()
	}
	return m.overview.View()
}

// Run starts the interactive app on the alternate screen and returns the
// route that was active on exit.
func Run(ctx context.Context, svc *todo.Service, t Theme, r route.Route, events <-chan struct{}) (route.Route, error) {
	p := tea.NewProgram(NewApp(ctx, svc, t, r, events), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return r, err
	}
	if fm, ok := final.(AppModel); ok {
		return fm.Route(), nil
	}
	return r, nil
}
