package ui

import (
	"context"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/todo"
)

func newTestService(t *testing.T) *todo.Service {
	t.Helper()
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	repo := store.NewRepository(memstore.New(), "", logging.Discard())
	return todo.New(repo, todo.WithClock(clock), todo.WithLogger(logging.Discard()))
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settleOverview runs cmd and feeds its message back, the way the runtime would for a
// single data command.
func settleOverview(t *testing.T, m OverviewModel, cmd tea.Cmd) OverviewModel {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func settleEditor(t *testing.T, m EditorModel, cmd tea.Cmd) EditorModel {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func loadedOverview(t *testing.T, svc *todo.Service) OverviewModel {
	t.Helper()
	m := NewOverview(context.Background(), svc, NewTheme("mono"), route.All)
	return settleOverview(t, m, m.Init())
}

func TestOverviewEmpty(t *testing.T) {
	m := loadedOverview(t, newTestService(t))
	v := m.View()
	assert.Contains(t, v, "to-do lists")
	assert.Contains(t, v, NoListsText)
	assert.Contains(t, v, "0 (0/0)")
}

func TestOverviewCreateAndRename(t *testing.T) {
	svc := newTestService(t)
	m := loadedOverview(t, svc)

	m, _ = m.Update(press("a"))
	require.True(t, m.input.active)
	m, _ = m.Update(press("Groceries"))
	m, cmd := m.Update(press("enter"))
	assert.False(t, m.input.active)
	m = settleOverview(t, m, cmd)

	require.Len(t, m.Lists(), 1)
	assert.Equal(t, "Groceries", m.Lists()[0].Name)
	assert.Contains(t, m.View(), "Groceries (0 items)")

	m, _ = m.Update(press("e"))
	require.True(t, m.input.active)
	assert.Equal(t, "Groceries", m.input.ti.Value())
	m, _ = m.Update(press("!"))
	m, cmd = m.Update(press("enter"))
	m = settleOverview(t, m, cmd)
	assert.Equal(t, "Groceries!", m.Lists()[0].Name)
	assert.NotNil(t, m.Lists()[0].LastRenamed)
}

func TestOverviewRejectsBlankInput(t *testing.T) {
	m := loadedOverview(t, newTestService(t))
	m, _ = m.Update(press("a"))
	m, _ = m.Update(press("   "))
	m, cmd := m.Update(press("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.input.active, "input stays open")
	assert.NotEmpty(t, m.input.err)

	m, _ = m.Update(press("esc"))
	assert.False(t, m.input.active)
	assert.Empty(t, m.Lists())
}

func TestOverviewToggleAndClearConfirmation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.CreateList(ctx, "a")
	require.NoError(t, err)
	_, err = svc.CreateList(ctx, "b")
	require.NoError(t, err)
	m := loadedOverview(t, svc)

	m, _ = m.Update(press("c"))
	assert.False(t, m.confirm, "nothing done, nothing to clear")

	m, cmd := m.Update(press("space"))
	m = settleOverview(t, m, cmd)
	assert.Equal(t, model.Counts{All: 2, Pending: 1, Done: 1}, m.Lists().Counts())
	assert.Contains(t, m.View(), "2 (1/1)")

	m, _ = m.Update(press("c"))
	assert.True(t, m.confirm)
	assert.Contains(t, m.View(), ConfirmText)
	m, _ = m.Update(press("n"))
	assert.False(t, m.confirm)
	assert.Len(t, m.Lists(), 2)

	m, _ = m.Update(press("c"))
	m, cmd = m.Update(press("y"))
	m = settleOverview(t, m, cmd)
	require.Len(t, m.Lists(), 1)
	assert.Equal(t, "b", m.Lists()[0].Name)
	assert.Contains(t, m.View(), "cleared 1")
}

func TestOverviewFiltersAndOpen(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, _ := svc.CreateList(ctx, "alpha")
	b, _ := svc.CreateList(ctx, "beta")
	_, err := svc.ToggleList(ctx, b.ID)
	require.NoError(t, err)
	m := loadedOverview(t, svc)
	assert.Len(t, m.rows.Items(), 2)

	m, _ = m.Update(press("2"))
	assert.Equal(t, "/#pending", m.Route().String())
	require.Len(t, m.rows.Items(), 1)

	_, cmd := m.Update(press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenListMsg{ID: a.ID}, cmd())

	m, _ = m.Update(press("tab"))
	assert.Equal(t, route.Done, m.filter)
	require.Len(t, m.rows.Items(), 1)
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, b.ID, sel.ID)

	m, _ = m.Update(press("3"))
	m, _ = m.Update(press("d"))
	assert.Len(t, m.Lists(), 2, "delete is asynchronous")

	m, _ = m.Update(press("1"))
	m, cmd = m.Update(press("t"))
	m = settleOverview(t, m, cmd)
	assert.Equal(t, model.Counts{All: 2, Pending: 1, Done: 1}, m.Lists().Counts())
}

func TestOverviewPreviewPane(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	l, _ := svc.CreateList(ctx, "Groceries")
	_, err := svc.AddItem(ctx, l.ID, "milk")
	require.NoError(t, err)
	m := loadedOverview(t, svc)

	assert.NotContains(t, m.View(), "milk")
	m, _ = m.Update(press("p"))
	assert.Contains(t, m.View(), "milk")
}

func TestOverviewSurfacesErrors(t *testing.T) {
	m := loadedOverview(t, newTestService(t))
	m, _ = m.Update(listsMsg{err: model.ErrListNotFound})
	assert.Contains(t, m.View(), model.ErrListNotFound.Error())
}

func TestEditorItems(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	l, _ := svc.CreateList(ctx, "Groceries")
	m := NewEditor(ctx, svc, NewTheme("mono"), l.ID, route.All)
	m = settleEditor(t, m, m.Init())
	assert.Contains(t, m.View(), EmptyListText)

	for _, text := range []string{"milk", "eggs"} {
		m, _ = m.Update(press("a"))
		m, _ = m.Update(press(text))
		var cmd tea.Cmd
		m, cmd = m.Update(press("enter"))
		m = settleEditor(t, m, cmd)
	}
	got, found := m.List()
	require.True(t, found)
	require.Len(t, got.Items, 2)

	m, cmd := m.Update(press("space"))
	m = settleEditor(t, m, cmd)
	got, _ = m.List()
	assert.True(t, got.Items[0].Done)
	assert.Contains(t, m.View(), "2 (1/1)")

	m, _ = m.Update(press("3"))
	assert.Equal(t, "/to-do-list/"+strconv.FormatInt(l.ID, 10)+"#done", m.Route().String())
	require.Len(t, m.rows.Items(), 1)

	m, _ = m.Update(press("1"))
	m, _ = m.Update(press("c"))
	m, cmd = m.Update(press("y"))
	m = settleEditor(t, m, cmd)
	got, _ = m.List()
	require.Len(t, got.Items, 1)
	assert.Equal(t, "eggs", got.Items[0].Text)

	m, _ = m.Update(press("e"))
	assert.Equal(t, "eggs", m.input.ti.Value())
	m, _ = m.Update(press("esc"))
	assert.False(t, m.input.active)

	_, cmd = m.Update(press("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestEditorUnknownList(t *testing.T) {
	ctx := context.Background()
	m := NewEditor(ctx, newTestService(t), NewTheme("mono"), 42, route.All)
	m = settleEditor(t, m, m.Init())
	_, found := m.List()
	assert.False(t, found)
	assert.Contains(t, m.View(), InvalidEditorText)

	m, cmd := m.Update(press("a"))
	assert.Nil(t, cmd)
	assert.False(t, m.input.active)

	_, cmd = m.Update(press("backspace"))
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestEditorIgnoresOtherLists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	l, _ := svc.CreateList(ctx, "a")
	m := NewEditor(ctx, svc, NewTheme("mono"), l.ID, route.All)
	m = settleEditor(t, m, m.Init())
	m, _ = m.Update(listMsg{id: l.ID + 1, list: model.List{Name: "other"}, found: true})
	got, _ := m.List()
	assert.Equal(t, "a", got.Name)
}

func TestAppRoutes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	l, _ := svc.CreateList(ctx, "Groceries")

	app := NewApp(ctx, svc, NewTheme("mono"), route.Route{ListID: l.ID, Filter: route.Pending}, nil)
	assert.Equal(t, route.Route{ListID: l.ID, Filter: route.Pending}, app.Route())

	next, _ := app.Update(BackMsg{})
	app = next.(AppModel)
	assert.True(t, app.Route().Overview())

	next, cmd := app.Update(OpenListMsg{ID: l.ID})
	app = next.(AppModel)
	assert.Equal(t, route.Route{ListID: l.ID, Filter: route.All}, app.Route())
	next, _ = app.Update(cmd())
	app = next.(AppModel)
	assert.Contains(t, app.View(), "Groceries")

	next, _ = app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = next.(AppModel)
	assert.Equal(t, 100, app.editor.width)
	assert.Equal(t, 100, app.overview.width)
}

func TestAppReloadsOnStoreChange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	events := make(chan struct{}, 1)
	app := NewApp(ctx, svc, NewTheme("mono"), route.Route{}, events)

	_, err := svc.CreateList(ctx, "written elsewhere")
	require.NoError(t, err)

	events <- struct{}{}
	msg := waitForChange(events)()
	assert.Equal(t, StoreChangedMsg{}, msg)

	next, _ := app.Update(msg)
	app = next.(AppModel)
	next, _ = app.Update(app.overview.refresh()())
	app = next.(AppModel)
	assert.Len(t, app.overview.Lists(), 1)

	close(events)
	assert.Nil(t, waitForChange(events)())
	assert.Nil(t, waitForChange(nil))
}

func TestStoreChangeKeepsStatusLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	l, err := svc.CreateList(ctx, "Groceries")
	require.NoError(t, err)

	m := loadedOverview(t, svc)
	m, cmd := m.Update(press("space"))
	m = settleOverview(t, m, cmd)
	status := m.status
	require.NotEmpty(t, status)

	m = settleOverview(t, m, m.refresh())
	assert.Equal(t, status, m.status)
	assert.True(t, m.Lists()[0].Done)

	e := NewEditor(ctx, svc, NewTheme("mono"), l.ID, route.All)
	e = settleEditor(t, e, e.Init())
	e, _ = e.Update(press("a"))
	e, _ = e.Update(press("milk"))
	e, cmd = e.Update(press("enter"))
	e = settleEditor(t, e, cmd)
	assert.Equal(t, "added milk", e.status)

	e = settleEditor(t, e, e.refresh())
	assert.Equal(t, "added milk", e.status)
	assert.Len(t, e.rows.Items(), 1)
}

func TestRenderPreview(t *testing.T) {
	th := NewTheme("mono")
	l := model.List{Name: "Groceries", Items: []model.Item{{ID: 1, Text: "milk"}, {ID: 2, Text: "eggs", Done: true}}}

	v := RenderPreview(l, true, th)
	assert.Contains(t, v, "to-do list")
	assert.Contains(t, v, "Groceries")
	assert.Contains(t, v, "[ ] milk")
	assert.Contains(t, v, "[x] eggs")
	assert.Contains(t, v, "2 (1/1)")

	assert.Contains(t, RenderPreview(model.List{Name: "x"}, true, th), EmptyListText)
	assert.Contains(t, RenderPreview(model.List{}, false, th), InvalidIDText)
}
