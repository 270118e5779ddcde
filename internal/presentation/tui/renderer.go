package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/hackterm/pkg/script"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer(opts ...glamour.TermRendererOption) (func(string) (string, error), error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// ScriptMarkdown describes a script as a markdown document.
func ScriptMarkdown(s *script.Script) string {
	var b strings.Builder
	name := s.Name
	if name == "" {
		name = "untitled"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "%d steps", len(s.Steps))
	if cues := s.Cues(); len(cues) > 0 {
		fmt.Fprintf(&b, ", cues: `%s`", strings.Join(cues, "`, `"))
	}
	b.WriteString("\n\n| # | Step | Detail |\n|---|---|---|\n")
	for i, step := range s.Steps {
		kind, err := step.Kind()
		if err != nil {
			fmt.Fprintf(&b, "| %d | invalid | %s |\n", i+1, err)
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, kind, stepDetail(kind, step))
	}
	return b.String()
}

func stepDetail(kind script.StepKind, step script.Step) string {
	switch kind {
	case script.StepWrite:
		return quote(*step.Write)
	case script.StepWriteLine:
		return quote(*step.WriteLine)
	case script.StepWriteRaw:
		return quote(*step.WriteRaw)
	case script.StepWait:
		return step.Wait.String()
	case script.StepWaitVariables:
		return fmt.Sprintf("until %d variable(s)", step.WaitVariables)
	case script.StepVariable:
		return fmt.Sprintf("`%s` = %v", step.Variable.Name, step.Variable.Value)
	case script.StepCue:
		return "`" + step.Cue + "`"
	default:
		return ""
	}
}

// quote escapes control characters so they stay visible inside a table cell.
func quote(s string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, "|", `\|`)
	return "\"" + r.Replace(s) + "\""
}

// RenderScript renders the markdown description of s for the terminal.
func RenderScript(s *script.Script, opts ...glamour.TermRendererOption) (string, error) {
	render, err := NewRenderer(opts...)
	if err != nil {
		return "", err
	}
	return render(ScriptMarkdown(s))
}
