package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inlineInput is the shared add/rename box shown under a list.
type inlineInput struct {
	ti     textinput.Model
	title  string
	err    string
	active bool
	target int64 // id being edited; zero when adding
}

func newInlineInput() inlineInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	return inlineInput{ti: ti}
}

func (in *inlineInput) open(title, placeholder, value string, target int64) tea.Cmd {
	in.title, in.err, in.active, in.target = title, "", true, target
	in.ti.Placeholder = placeholder
	in.ti.SetValue(value)
	in.ti.CursorEnd()
	return in.ti.Focus()
}

func (in *inlineInput) close() {
	in.active, in.err, in.target = false, "", 0
	in.ti.SetValue("")
	in.ti.Blur()
}

// inputResult says what a key did to the box.
type inputResult int

const (
	inputTyping inputResult = iota
	inputSubmitted
	inputCancelled
)

// update feeds msg to the box. On submit it returns the trimmed value; a
// whitespace-only value sets an error and keeps the box open.
func (in *inlineInput) update(msg tea.Msg) (inputResult, string, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			v := strings.TrimSpace(in.ti.Value())
			if v == "" {
				in.err = "Please enter some text"
				return inputTyping, "", nil
			}
			return inputSubmitted, v, nil
		case "esc":
			in.close()
			return inputCancelled, "", nil
		}
	}
	var cmd tea.Cmd
	in.ti, cmd = in.ti.Update(msg)
	return inputTyping, "", cmd
}

func (in inlineInput) view(t Theme) string {
	title := in.title
	if in.err != "" {
		title += "  " + t.Error.Render(in.err)
	}
	return t.Frame().Render(title + "\n" + in.ti.View())
}
