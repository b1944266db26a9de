package ui

import (
	"fmt"
	"io"
)

// Printer writes the one-line CLI results in the theme's colors.
type Printer struct {
	Out, Err io.Writer
	Theme    Theme
}

func (p Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.Theme.Success.Render(p.Theme.SymDone+" "+msg))
}

func (p Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Error.Render(p.Theme.SymFail+" "+msg))
}

// Hint prints a muted follow-up line on the error stream.
func (p Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Muted.Render(msg))
}

// Println writes an unstyled line to the output stream.
func (p Printer) Println(a ...any) {
	fmt.Fprintln(p.Out, a...)
}
