package script_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hackterm/internal/testutils"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/script"
)

// recordingConsole logs every call. VariableCount grows by one per poll
// once growOnPoll is set.
type recordingConsole struct {
	calls      []string
	variables  map[string]domain.Visibility
	growOnPoll bool
	polls      int
	tutorial   bool
}

func newRecordingConsole() *recordingConsole {
	return &recordingConsole{variables: make(map[string]domain.Visibility)}
}

func (c *recordingConsole) Write(message string, args ...any) {
	c.calls = append(c.calls, "write:"+message)
}

func (c *recordingConsole) WriteLine(message string, args ...any) {
	c.calls = append(c.calls, "write_line:"+message)
}

func (c *recordingConsole) WriteCallback(message string, onComplete func()) {
	c.calls = append(c.calls, "write_raw:"+message)
}

func (c *recordingConsole) Clear() { c.calls = append(c.calls, "clear") }

func (c *recordingConsole) ClearLastLine() { c.calls = append(c.calls, "clear_last_line") }

func (c *recordingConsole) AddVariable(name string, value any, visibility domain.Visibility) error {
	c.calls = append(c.calls, fmt.Sprintf("variable:%s=%v", name, value))
	c.variables[name] = visibility
	return nil
}

func (c *recordingConsole) VariableCount() int {
	if c.growOnPoll {
		c.polls++
		return c.polls - 1
	}
	return len(c.variables)
}

func (c *recordingConsole) SetTutorialPlaying(playing bool) { c.tutorial = playing }

func (c *recordingConsole) Flush(ctx context.Context) error {
	c.calls = append(c.calls, "flush")
	return ctx.Err()
}

func TestPlayer_Play(t *testing.T) {
	s, err := script.Parse([]byte(tutorial))
	require.NoError(t, err)

	console := newRecordingConsole()
	console.growOnPoll = true
	clock := testutils.NewFakeClock()
	cued := 0
	player := script.NewPlayer(console,
		script.WithClock(clock),
		script.WithPollInterval(10*time.Millisecond),
		script.WithCue("spawn_effect", func(ctx context.Context) error {
			cued++
			return nil
		}),
	)

	require.NoError(t, player.Play(context.Background(), s))

	assert.Equal(t, []string{
		"write_line:Connection established.", "flush",
		"clear", "flush",
		"write:Select a door and inspect it.", "flush",
		"variable:door=map[Code:1234 Locked:true]",
		"clear_last_line", "flush",
		"write_raw:>\tdone", "flush",
	}, console.calls)
	assert.Equal(t, 1, cued)
	assert.Equal(t, domain.Visibility{"Code": false}, console.variables["door"])
	// 5s wait plus one 10ms poll before the variable count reached 1.
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Millisecond}, clock.Sleeps())
}

func TestPlayer_UnknownCue(t *testing.T) {
	s, err := script.Parse([]byte("steps:\n  - cue: pause_timer\n"))
	require.NoError(t, err)

	console := newRecordingConsole()
	err = script.NewPlayer(console).Play(context.Background(), s)
	assert.ErrorIs(t, err, script.ErrUnknownCue)
	assert.Empty(t, console.calls, "nothing runs when a cue is missing")
}

func TestPlayer_CueError(t *testing.T) {
	s, err := script.Parse([]byte("steps:\n  - cue: boom\n  - write: never\n"))
	require.NoError(t, err)

	boom := errors.New("boom")
	console := newRecordingConsole()
	player := script.NewPlayer(console, script.WithCue("boom", func(ctx context.Context) error {
		return boom
	}))

	err = player.Play(context.Background(), s)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, console.calls)
	assert.False(t, console.tutorial, "flag cleared on failure")
}

func TestPlayer_MarksTutorialPlaying(t *testing.T) {
	s, err := script.Parse([]byte("steps:\n  - cue: check\n"))
	require.NoError(t, err)

	console := newRecordingConsole()
	var during bool
	player := script.NewPlayer(console, script.WithCue("check", func(ctx context.Context) error {
		during = console.tutorial
		return nil
	}))

	require.NoError(t, player.Play(context.Background(), s))
	assert.True(t, during)
	assert.False(t, console.tutorial)
}

func TestPlayer_CancelledDuringWait(t *testing.T) {
	s, err := script.Parse([]byte("steps:\n  - wait_variables: 3\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = script.NewPlayer(newRecordingConsole(), script.WithClock(testutils.NewFakeClock())).Play(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
}
