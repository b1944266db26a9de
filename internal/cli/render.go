package cli

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/ui"
)

// row is one printable entry. pos is its 1-based position in the unfiltered
// collection so it can be passed back as a ref.
type row struct {
	pos    int
	id     int64
	done   bool
	text   string
	suffix string
}

func listRows(lists model.Lists) []row {
	out := make([]row, 0, len(lists))
	for i, l := range lists {
		out = append(out, row{pos: i + 1, id: l.ID, done: l.Done, text: l.Name, suffix: ui.ItemSummary(l)})
	}
	return out
}

func itemRows(l model.List) []row {
	out := make([]row, 0, len(l.Items))
	for i, it := range l.Items {
		out = append(out, row{pos: i + 1, id: it.ID, done: it.Done, text: it.Text})
	}
	return out
}

// renderPanel draws a header with live counts, a progress bar, the rows
// (flat or grouped) and a footer with the active filter.
func renderPanel(t ui.Theme, title string, rows []row, c model.Counts, f route.Filter, group bool, empty string) string {
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(title),
		t.Success.Render(t.SymDone), c.Done,
		t.Pending.Render(t.SymPending), c.Pending,
		t.Accent.Render("Total"), c.All,
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(c.Done, c.All, 28)), ""}
	visible := route.Apply(rows, f, func(r row) bool { return r.done })
	switch {
	case len(rows) == 0:
		lines = append(lines, t.Muted.Render(empty))
	case group:
		lines = append(lines, groupLines(t, visible)...)
	default:
		lines = append(lines, flatLines(t, visible)...)
	}
	lines = append(lines, "", t.Footer(c, f))
	return t.Panel(lines)
}

func flatLines(t ui.Theme, rows []row) []string {
	if len(rows) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		idx := fmt.Sprintf("%2d.", r.pos)
		text := r.text
		if len([]rune(text)) > 80 {
			text = string([]rune(text)[:77]) + "..."
		}
		if r.done {
			text = t.DoneText.Render(text)
		}
		line := fmt.Sprintf("%s %s %s", t.Muted.Render(idx), t.Box(r.done), text)
		if r.suffix != "" {
			line += " " + t.Muted.Render(r.suffix)
		}
		out = append(out, line+" "+t.Muted.Render(fmt.Sprintf("[%d]", r.id)))
	}
	return out
}

func groupLines(t ui.Theme, rows []row) []string {
	var pend, done []row
	for _, r := range rows {
		if r.done {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, flatLines(t, pend)...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	lines = append(lines, flatLines(t, done)...)
	return lines
}
