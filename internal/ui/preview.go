package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Texts shown in place of content.
const (
	NoListsText       = "There are no to-do lists to show!"
	EmptyListText     = "Good for you: There's nothing to do!"
	InvalidIDText     = "Invalid ID!"
	InvalidEditorText = "Invalid ID! Your entries won't be stored!"
	ConfirmText       = "Sure? (y/n)"
)

// RenderPreview draws a read-only panel for one list. found is false when
// the requested id does not exist.
func RenderPreview(l model.List, found bool, t Theme) string {
	lines := []string{t.Muted.Render("to-do list")}
	if !found {
		lines = append(lines, t.Error.Render(InvalidIDText))
		return t.Panel(lines)
	}
	lines = append(lines, t.Title.Inherit(stateStyle(t, l.Done)).Render(l.Name), "")
	if len(l.Items) == 0 {
		lines = append(lines, t.Muted.Render(EmptyListText))
	}
	for _, it := range l.Items {
		lines = append(lines, ItemLine(t, it))
	}
	lines = append(lines, "", t.Accent.Render(CountLine(l.Counts())))
	return t.Panel(lines)
}

// ItemLine is one item as "box text", struck through when done.
func ItemLine(t Theme, it model.Item) string {
	text := it.Text
	if it.Done {
		text = t.DoneText.Render(text)
	}
	return fmt.Sprintf("%s %s", t.Box(it.Done), text)
}

// ListLine is one overview row: "box name (N items: ...)".
func ListLine(t Theme, l model.List) string {
	return fmt.Sprintf("%s %s %s", t.Box(l.Done), t.State(l.Name, l.Done), t.Muted.Render(ItemSummary(l)))
}
