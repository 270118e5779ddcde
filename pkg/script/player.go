package script

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/adapters/clock"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// DefaultPollInterval is how often wait_variables re-checks the registry (one frame at 60fps).
const DefaultPollInterval = 16 * time.Millisecond

// Console is the part of the console a script drives.
type Console interface {
	Write(message string, args ...any)
	WriteLine(message string, args ...any)
	WriteCallback(message string, onComplete func())
	Clear()
	ClearLastLine()
	AddVariable(name string, value any, visibility domain.Visibility) error
	VariableCount() int
	Flush(ctx context.Context) error
	SetTutorialPlaying(playing bool)
}

// CueFunc is invoked for a cue step. The script waits for it to return.
type CueFunc func(ctx context.Context) error

// Player runs scripts against a console.
type Player struct {
	console Console
	clock   ports.Clock
	cues    map[string]CueFunc
	poll    time.Duration
	logger  *slog.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithCue registers the callback for a named cue.
func WithCue(name string, fn CueFunc) PlayerOption {
	return func(p *Player) {
		p.cues[name] = fn
	}
}

// WithClock sets the delay source used by wait steps.
func WithClock(c ports.Clock) PlayerOption {
	return func(p *Player) {
		p.clock = c
	}
}

// WithPollInterval sets how often wait_variables re-checks.
func WithPollInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		p.poll = d
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = logger
	}
}

// NewPlayer creates a player for console.
func NewPlayer(console Console, opts ...PlayerOption) *Player {
	p := &Player{
		console: console,
		clock:   clock.New(),
		cues:    make(map[string]CueFunc),
		poll:    DefaultPollInterval,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check reports cues the script references that the player cannot serve.
func (p *Player) Check(s *Script) error {
	for _, name := range s.Cues() {
		if _, ok := p.cues[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCue, name)
		}
	}
	return nil
}

// Play runs every step in order. Console steps are awaited until the
// animation they queued has finished, so pauses are measured from the end of
// the text reveal.
func (p *Player) Play(ctx context.Context, s *Script) error {
	if err := p.Check(s); err != nil {
		return err
	}

	p.console.SetTutorialPlaying(true)
	defer p.console.SetTutorialPlaying(false)

	p.logger.Debug("script started", "script", s.Name, "steps", len(s.Steps))
	for i, step := range s.Steps {
		kind, err := step.Kind()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := p.play(ctx, kind, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, kind, err)
		}
	}
	p.logger.Debug("script finished", "script", s.Name)
	return nil
}

func (p *Player) play(ctx context.Context, kind StepKind, step Step) error {
	switch kind {
	case StepWrite:
		p.console.Write(*step.Write)
	case StepWriteLine:
		p.console.WriteLine(*step.WriteLine)
	case StepWriteRaw:
		p.console.WriteCallback(*step.WriteRaw, nil)
	case StepClear:
		p.console.Clear()
	case StepClearLastLine:
		p.console.ClearLastLine()
	case StepWait:
		return p.clock.Sleep(ctx, step.Wait)
	case StepWaitVariables:
		return p.waitVariables(ctx, step.WaitVariables)
	case StepVariable:
		vis := make(domain.Visibility, len(step.Variable.Hidden))
		for _, key := range step.Variable.Hidden {
			vis[key] = false
		}
		return p.console.AddVariable(step.Variable.Name, step.Variable.Value, vis)
	case StepCue:
		p.logger.Debug("cue", "name", step.Cue)
		return p.cues[step.Cue](ctx)
	}
	return p.console.Flush(ctx)
}

func (p *Player) waitVariables(ctx context.Context, n int) error {
	for p.console.VariableCount() < n {
		if err := p.clock.Sleep(ctx, p.poll); err != nil {
			return err
		}
	}
	return nil
}
