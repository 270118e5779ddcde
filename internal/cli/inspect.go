package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/hackterm/internal/presentation/tui"
)

// Inspect renders a script as a markdown summary. Empty path inspects the
// built-in tutorial. Raw skips terminal styling.
func Inspect(w io.Writer, path string, raw bool) error {
	s, err := loadScript(path)
	if err != nil {
		return err
	}
	if raw {
		_, err := io.WriteString(w, tui.ScriptMarkdown(s))
		return err
	}

	var opts []glamour.TermRendererOption
	if !isTerminal(w) {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	rendered, err := tui.RenderScript(s, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
