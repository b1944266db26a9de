package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText, Help                     lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymFail         string
	SymPending               string
}

// NewTheme returns the named theme; unknown names get classic.
func NewTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			DoneText:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:         lipgloss.NewStyle().Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymFail: "✖", SymPending: "•",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected:     plain.Reverse(true),
			DoneText:     plain,
			Help:         plain,
			Border:       lipgloss.ASCIIBorder(),
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymFail: "!", SymPending: "-",
		}
	default: // classic
		return Theme{
			Name:         "classic",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
			DoneText:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:         lipgloss.NewStyle().Faint(true),
			Border:       lipgloss.NormalBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymFail: "✖", SymPending: "•",
		}
	}
}

// Frame is the bordered box every panel is drawn in.
func (t Theme) Frame() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}

// Box returns the check box for a done flag.
func (t Theme) Box(done bool) string {
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// State colors text by done flag, as list names are in headers.
func (t Theme) State(text string, done bool) string {
	return stateStyle(t, done).Render(text)
}

func stateStyle(t Theme, done bool) lipgloss.Style {
	if done {
		return t.Success
	}
	return t.Pending
}
