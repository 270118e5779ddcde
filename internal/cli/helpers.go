package cli

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/script"
)

//go:embed tutorial.yaml
var tutorialScript []byte

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the console on Stdout).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStarted: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("run started", "request_id", e.RequestID, "kind", e.Kind, "queued", e.Queued)
		},
		OnRunCompleted: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("run completed", "request_id", e.RequestID, "kind", e.Kind,
				"chars", e.Steps, "skipped", e.Skipped, "duration", e.Duration)
		},
		OnStepSkipped: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("step skipped", "request_id", e.RequestID, "index", e.Index)
		},
	}
}

// loadScript reads path, or returns the built-in tutorial when path is empty.
func loadScript(path string) (*script.Script, error) {
	if path == "" {
		return script.Parse(tutorialScript)
	}
	return script.Load(path)
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
