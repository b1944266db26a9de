package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws lines in a framed box using the theme.
func (t Theme) Panel(lines []string) string {
	return t.Frame().Render(strings.Join(lines, "\n"))
}

// CountLine is the footer tally: "all (pending/done)".
func CountLine(c model.Counts) string {
	return fmt.Sprintf("%d (%d/%d)", c.All, c.Pending, c.Done)
}

// ItemSummary describes a list's items for the overview,
// e.g. "(3 items: 2 pending, 1 done)".
func ItemSummary(l model.List) string {
	c := l.Counts()
	noun := "items"
	if c.All == 1 {
		noun = "item"
	}
	if c.All == 0 {
		return fmt.Sprintf("(%d %s)", c.All, noun)
	}
	return fmt.Sprintf("(%d %s: %d pending, %d done)", c.All, noun, c.Pending, c.Done)
}

// FilterBar shows the three filters with the active one highlighted.
func (t Theme) FilterBar(active route.Filter) string {
	parts := make([]string, 0, len(route.Filters))
	for _, f := range route.Filters {
		label := f.Label()
		if f == active {
			parts = append(parts, t.Accent.Underline(true).Render(label))
		} else {
			parts = append(parts, t.Muted.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// Footer joins the tally and filter bar the way both editors show them.
func (t Theme) Footer(c model.Counts, active route.Filter) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		t.Accent.Render(CountLine(c)), "   ", t.FilterBar(active))
}
