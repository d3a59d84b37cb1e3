// Package display renders shell output in the two visual classes used by the
// interactive shell (highlight and alert), plus spinners and markdown.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	highlight = color.New(color.FgYellow)
	alert     = color.New(color.FgRed)
)

// Highlight writes informational text in the highlight class.
func Highlight(w io.Writer, format string, a ...any) {
	_, _ = highlight.Fprintf(w, format, a...)
}

// Alert writes text in the error/exit class.
func Alert(w io.Writer, format string, a ...any) {
	_, _ = alert.Fprintf(w, format, a...)
}

// ShowError writes a single "Error: <msg>" line in the error class.
func ShowError(w io.Writer, msg string) {
	Alert(w, "Error: %s\n", msg)
}

// ShowEntry writes a highlighted name followed by a tab and a plain description.
func ShowEntry(w io.Writer, name, description string) {
	Highlight(w, "%s\t", name)
	fmt.Fprintln(w, description)
}

// SetColor forces colored output on or off, overriding terminal detection.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
