package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hackterm/internal/presentation/tui"
	"github.com/aretw0/hackterm/internal/testutils"
	"github.com/aretw0/hackterm/pkg/animator"
	"github.com/aretw0/hackterm/pkg/script"
)

func TestPresenter_MirrorsAnimator(t *testing.T) {
	var out bytes.Buffer
	p := tui.NewPresenter(&out, termenv.WithProfile(termenv.Ascii))

	a := animator.New(
		animator.WithClock(testutils.NewFakeClock()),
		animator.WithLifecycleHooks(p.Hooks()),
	)
	defer a.Close(context.Background())
	p.Start(a.Text())

	a.WriteLine("first")
	a.Write("second")
	a.ClearLastLine()
	a.Write("third")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Flush(ctx))

	assert.Equal(t, a.Text(), p.Text())
	assert.Contains(t, out.String(), "first")
	assert.Contains(t, out.String(), "third")

	a.Clear()
	require.NoError(t, a.Flush(ctx))
	assert.Equal(t, ">\t", p.Text())
}

func TestIndicator(t *testing.T) {
	var out bytes.Buffer
	ind := tui.NewIndicator(&out, "hackterm", "hackterm - hacking")

	ind.OnRunStarted()
	assert.Contains(t, out.String(), "hackterm - hacking")
	ind.OnRunCompleted()

	started, completed := ind.Cues()
	assert.Equal(t, int64(1), started)
	assert.Equal(t, int64(1), completed)
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	tui.PrintBanner(&out)
	assert.Contains(t, out.String(), "|_| |_|")
}

func TestScriptMarkdown(t *testing.T) {
	s, err := script.Parse([]byte(`
name: intro
steps:
  - write_line: "a|b"
  - wait: 2s
  - cue: spawn_effect
`))
	require.NoError(t, err)

	md := tui.ScriptMarkdown(s)
	assert.True(t, strings.HasPrefix(md, "# intro\n"))
	assert.Contains(t, md, "3 steps, cues: `spawn_effect`")
	assert.Contains(t, md, `| 1 | write_line | "a\|b" |`)
	assert.Contains(t, md, "| 2 | wait | 2s |")

	rendered, err := tui.RenderScript(s, glamour.WithStandardStyle("notty"))
	require.NoError(t, err)
	assert.Contains(t, rendered, "intro")
}
