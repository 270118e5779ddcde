package animator

import (
	"log/slog"
	"time"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// Option defines a functional option for configuring the Animator.
type Option func(*Animator)

// WithClock sets the real-time delay source. Defaults to the wall clock.
func WithClock(c ports.Clock) Option {
	return func(a *Animator) {
		a.clock = c
	}
}

// WithLifecycleHooks registers run and character observers.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Animator) {
		a.hooks = hooks
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// WithPrompt overrides the prompt literal (default ">\t").
func WithPrompt(prompt string) Option {
	return func(a *Animator) {
		a.prompt = prompt
	}
}

// WithWriteDelay sets the pause after each written character.
func WithWriteDelay(d time.Duration) Option {
	return func(a *Animator) {
		a.writeDelay = d
	}
}

// WithClearDelay sets the pause after each removed character.
func WithClearDelay(d time.Duration) Option {
	return func(a *Animator) {
		a.clearDelay = d
	}
}

// WithSkipSet sets the characters that never pause the animation.
func WithSkipSet(chars ...rune) Option {
	return func(a *Animator) {
		a.skipSet = append([]rune(nil), chars...)
	}
}
