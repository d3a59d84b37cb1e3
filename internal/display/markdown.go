package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

var renderer *glamour.TermRenderer

// InitRenderer prepares the markdown renderer used by ShowContentRendered.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// ShowContentRendered writes markdown through the renderer, or as plain text
// when no renderer was initialised or rendering fails.
func ShowContentRendered(w io.Writer, content string) {
	if renderer == nil {
		fmt.Fprintln(w, content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		fmt.Fprintln(w, content)
		return
	}
	fmt.Fprint(w, out)
}
