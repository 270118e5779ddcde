// Package process runs allow-listed external commands when a script reaches
// a cue, e.g. to play a sound or poke the game host.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os/exec"
	"slices"
	"strings"

	"github.com/aretw0/hackterm/internal/logging"
)

// ErrCueNotRegistered is returned for cues without a command.
var ErrCueNotRegistered = errors.New("cue not registered")

// Runner executes registered cue commands. Only registered commands run.
type Runner struct {
	registry map[string]CueConfig
	baseDir  string
	logger   *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(cues map[string]CueConfig) RunnerOption {
	return func(r *Runner) {
		for _, cue := range cues {
			r.registry[cue.Name] = cue
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new cue runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]CueConfig),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = CueConfig{
		Name:    name,
		Command: command,
		Args:    args,
	}
}

// Has reports whether name has a command.
func (r *Runner) Has(name string) bool {
	_, ok := r.registry[name]
	return ok
}

// Names lists the registered cues, sorted.
func (r *Runner) Names() []string {
	return slices.Sorted(maps.Keys(r.registry))
}

// Run executes the command bound to name and returns its trimmed stdout.
// The cue name is exported as HACKTERM_CUE together with the configured env.
func (r *Runner) Run(ctx context.Context, name string) (string, error) {
	cue, ok := r.registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCueNotRegistered, name)
	}

	cmd := exec.CommandContext(ctx, cue.Command, cue.Args...)
	cmd.Dir = r.baseDir

	env := []string{"HACKTERM_CUE=" + name}
	for _, k := range slices.Sorted(maps.Keys(cue.Environment)) {
		env = append(env, fmt.Sprintf("%s=%s", k, cue.Environment[k]))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("cue command started", "cue", name, "command", cue.Command)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cue %s failed: %w. Stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Handler adapts a registered cue to a script cue callback.
func (r *Runner) Handler(name string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		out, err := r.Run(ctx, name)
		if err != nil {
			return err
		}
		if out != "" {
			r.logger.Info("cue output", "cue", name, "output", out)
		}
		return nil
	}
}
