package hackterm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/animator"
	"github.com/aretw0/hackterm/pkg/config"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/registry"
)

// Console is the hacker console: an animated text terminal plus the variable
// inspectors shown next to it. It is the entry point game logic talks to.
type Console struct {
	anim      *animator.Animator
	variables *registry.Registry

	audio       ports.AudioCueSink
	factory     ports.WidgetFactory
	container   ports.Container
	guard       ports.InstanceGuard
	instanceKey string
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	animOpts    []animator.Option
	regOpts     []registry.Option

	mu          sync.Mutex
	scene       ports.SceneSource
	unsubscribe ports.UnsubscribeFunc
	release     ports.ReleaseFunc
	closed      bool
	tutorial    bool
}

// Option defines a functional option for configuring the Console.
type Option func(*Console)

// WithAudioSink wires the run start/complete cue receiver. Required.
func WithAudioSink(sink ports.AudioCueSink) Option {
	return func(c *Console) {
		c.audio = sink
	}
}

// WithWidgets wires the inspector widget factory and the container widgets are spawned into. Required.
func WithWidgets(factory ports.WidgetFactory, container ports.Container) Option {
	return func(c *Console) {
		c.factory = factory
		c.container = container
	}
}

// WithSceneSource wires the scene manager the console attaches to at creation. Required.
func WithSceneSource(src ports.SceneSource) Option {
	return func(c *Console) {
		c.scene = src
	}
}

// WithInstanceGuard replaces the process-wide single-instance guard.
func WithInstanceGuard(guard ports.InstanceGuard) Option {
	return func(c *Console) {
		c.guard = guard
	}
}

// WithInstanceKey sets the key claimed from the instance guard.
func WithInstanceKey(key string) Option {
	return func(c *Console) {
		c.instanceKey = key
	}
}

// WithLifecycleHooks registers additional observers (metrics, presenters).
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Console) {
		c.hooks = domain.MergeHooks(c.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// WithClock sets the real-time delay source used for pacing.
func WithClock(clock ports.Clock) Option {
	return func(c *Console) {
		c.animOpts = append(c.animOpts, animator.WithClock(clock))
	}
}

// WithDelays sets the per-character pauses for writing and clearing.
func WithDelays(write, clear time.Duration) Option {
	return func(c *Console) {
		c.animOpts = append(c.animOpts, animator.WithWriteDelay(write), animator.WithClearDelay(clear))
	}
}

// WithConfig applies file-based settings.
func WithConfig(cfg config.Config) Option {
	return func(c *Console) {
		c.animOpts = append(c.animOpts,
			animator.WithPrompt(cfg.Prompt),
			animator.WithWriteDelay(cfg.WriteDelay),
			animator.WithClearDelay(cfg.ClearDelay),
			animator.WithSkipSet(cfg.SkipRunes()...),
		)
		c.regOpts = append(c.regOpts, registry.WithTemplate(cfg.VariableTemplate))
		c.instanceKey = cfg.InstanceKey
	}
}

// New builds a console and claims its instance slot.
// It fails with domain.ErrMissingCollaborator when the audio sink or widgets
// are not wired, and with domain.ErrDuplicateInstance when another console
// already holds the instance key.
func New(ctx context.Context, opts ...Option) (*Console, error) {
	c := &Console{
		guard:       memory.DefaultGuard,
		instanceKey: domain.DefaultInstanceKey,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.audio == nil {
		return nil, fmt.Errorf("%w: audio cue sink", domain.ErrMissingCollaborator)
	}
	if c.scene == nil {
		return nil, fmt.Errorf("%w: scene source", domain.ErrMissingCollaborator)
	}
	if c.guard == nil {
		return nil, fmt.Errorf("%w: instance guard", domain.ErrMissingCollaborator)
	}

	regOpts := append([]registry.Option{registry.WithLogger(c.logger)}, c.regOpts...)
	variables, err := registry.NewRegistry(c.factory, c.container, regOpts...)
	if err != nil {
		return nil, err
	}
	c.variables = variables

	release, err := c.guard.Acquire(ctx, c.instanceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to claim console instance: %w", err)
	}
	c.release = release

	c.logger = c.logger.With("console", c.instanceKey)
	animOpts := append([]animator.Option{
		animator.WithLogger(c.logger),
		animator.WithLifecycleHooks(domain.MergeHooks(c.cueHooks(), c.hooks)),
	}, c.animOpts...)
	c.anim = animator.New(animOpts...)

	c.Attach(c.scene)

	c.logger.Debug("console ready", "prompt", c.anim.Prompt())
	return c, nil
}

func (c *Console) cueHooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStarted: func(ctx context.Context, e *domain.RunEvent) {
			c.audio.OnRunStarted()
		},
		OnRunCompleted: func(ctx context.Context, e *domain.RunEvent) {
			c.audio.OnRunCompleted()
		},
	}
}

// Write animates message followed by "\n\t". Args format message as fmt.Sprintf does.
func (c *Console) Write(message string, args ...any) {
	c.anim.Write(message, args...)
}

// WriteLine animates message followed by "\n>\t".
func (c *Console) WriteLine(message string, args ...any) {
	c.anim.WriteLine(message, args...)
}

// WriteCallback animates message verbatim and calls onComplete when it is done.
func (c *Console) WriteCallback(message string, onComplete func()) {
	c.anim.WriteCallback(message, onComplete)
}

// Clear removes everything after the prompt.
func (c *Console) Clear() {
	c.anim.Clear()
}

// ClearLastLine removes the most recent line.
func (c *Console) ClearLastLine() {
	c.anim.ClearLastLine()
}

// AddVariable shows value in an inspector named name, creating it on first use.
func (c *Console) AddVariable(name string, value any, visibility domain.Visibility) error {
	if c.isClosed() {
		return domain.ErrClosed
	}
	return c.variables.Upsert(name, value, visibility)
}

// RemoveVariable destroys the inspector named name.
func (c *Console) RemoveVariable(name string) error {
	return c.variables.Remove(name)
}

// RemoveAllVariables destroys every inspector and auxiliary input widget.
func (c *Console) RemoveAllVariables() error {
	return c.variables.RemoveAll()
}

// OnAnyButtonClicked locks every inspector while the click is being handled.
func (c *Console) OnAnyButtonClicked() {
	c.variables.SetInteractable(false)
}

// OnInputEnd unlocks every inspector.
func (c *Console) OnInputEnd() {
	c.variables.SetInteractable(true)
}

// Attach subscribes to scene-unloaded notifications, replacing any previous
// subscription. Close detaches.
func (c *Console) Attach(src ports.SceneSource) {
	c.Detach()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = src
	c.unsubscribe = src.OnSceneUnloaded(c.OnSceneUnloaded)
}

// Detach unsubscribes from the current scene source, if any.
func (c *Console) Detach() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.scene = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// OnSceneUnloaded tears the inspectors down and clears the console.
func (c *Console) OnSceneUnloaded(scene string) {
	c.logger.Debug("scene unloaded", "scene", scene)
	if err := c.variables.RemoveAll(); err != nil {
		c.logger.Warn("failed to remove variables on scene unload", "scene", scene, "err", err)
	}
	c.anim.Clear()
}

// Text returns a snapshot of the console text.
func (c *Console) Text() string {
	return c.anim.Text()
}

// SetTutorialPlaying marks whether a scripted tutorial currently drives the console.
func (c *Console) SetTutorialPlaying(playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tutorial = playing
}

// TutorialPlaying reports whether a scripted tutorial is in progress.
func (c *Console) TutorialPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tutorial
}

// Busy reports whether an animation is running or queued.
func (c *Console) Busy() bool {
	return c.anim.Busy()
}

// Flush blocks until every queued animation has completed, or ctx is done.
func (c *Console) Flush(ctx context.Context) error {
	return c.anim.Flush(ctx)
}

// VariableCount is the number of live inspectors.
func (c *Console) VariableCount() int {
	return c.variables.Len()
}

// Variables returns the inspector names in creation order.
func (c *Console) Variables() []string {
	return c.variables.Names()
}

// SkippedSteps counts out-of-range character mutations seen so far.
func (c *Console) SkippedSteps() int {
	return c.anim.SkippedSteps()
}

// Close detaches from the scene source, destroys every inspector, stops the
// animator (abandoning any in-flight run) and releases the instance slot.
func (c *Console) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.Detach()
	if err := c.variables.RemoveAll(); err != nil {
		c.logger.Warn("failed to remove variables on close", "err", err)
	}
	var errs []error
	if err := c.anim.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop animator: %w", err))
	}
	// The slot is released even when ctx expired while stopping the animator.
	if err := c.release(context.WithoutCancel(ctx)); err != nil {
		errs = append(errs, fmt.Errorf("failed to release console instance: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.logger.Debug("console closed")
	return nil
}

func (c *Console) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
