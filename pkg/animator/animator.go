// Package animator serializes console text animations onto a single worker.
//
// Every public operation enqueues a request and returns immediately. One
// goroutine drains the queue in submission order, running one character
// stream at a time against the text buffer, so two runs never interleave.
package animator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/adapters/clock"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/stream"
	"github.com/aretw0/hackterm/pkg/textbuffer"
)

// Animator is the sequenced text animation state machine.
type Animator struct {
	clock      ports.Clock
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	prompt     string
	writeDelay time.Duration
	clearDelay time.Duration
	skipSet    []rune

	mu     sync.Mutex // guards buffer
	buffer *textbuffer.Buffer

	qmu     sync.Mutex // guards everything below
	queue   []domain.Request
	state   domain.RunState
	idle    chan struct{} // closed while nothing is queued or running
	quiet   bool          // idle is closed
	closed  bool
	nextID  uint64
	skipped int

	nmu sync.Mutex // serializes queue notifications

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an animator in the Idle state and starts its worker.
// Close must be called to stop it.
func New(opts ...Option) *Animator {
	a := &Animator{
		clock:      clock.New(),
		logger:     logging.NewNop(),
		prompt:     domain.DefaultPrompt,
		writeDelay: domain.DefaultWriteDelay,
		clearDelay: domain.DefaultClearDelay,
		skipSet:    domain.DefaultSkipSet(),
		state:      domain.StateIdle,
		idle:       make(chan struct{}),
		quiet:      true,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	close(a.idle)

	for _, opt := range opts {
		opt(a)
	}

	a.buffer = textbuffer.New(a.prompt)
	a.ctx, a.cancel = context.WithCancel(context.Background())

	go a.loop()
	return a
}

// Write animates message followed by a line continuation.
func (a *Animator) Write(message string, args ...any) {
	a.enqueue(domain.NewWrite(format(message, args)+domain.LineContinuation, nil))
}

// WriteLine animates message followed by a prompt continuation.
func (a *Animator) WriteLine(message string, args ...any) {
	a.enqueue(domain.NewWrite(format(message, args)+domain.PromptContinuation, nil))
}

// WriteCallback animates message verbatim and calls onComplete once it is on screen.
func (a *Animator) WriteCallback(message string, onComplete func()) {
	a.enqueue(domain.NewWrite(message, onComplete))
}

// Clear removes everything after the prompt.
func (a *Animator) Clear() {
	a.enqueue(domain.NewClearAll())
}

// ClearLastLine removes the most recent line. It does nothing when the buffer
// holds no line break past the prompt at the time the request runs.
func (a *Animator) ClearLastLine() {
	a.enqueue(domain.NewClearLastLine())
}

// ClearRange removes indices start down to last, inclusive.
func (a *Animator) ClearRange(start, last int) {
	a.enqueue(domain.NewClearRange(start, last))
}

func (a *Animator) enqueue(req domain.Request) {
	if _, err := a.Submit(req); err != nil {
		a.logger.Warn("request dropped", "kind", req.Kind, "err", err)
	}
}

// Submit queues req and returns the ID assigned to it.
func (a *Animator) Submit(req domain.Request) (uint64, error) {
	a.qmu.Lock()
	if a.closed {
		a.qmu.Unlock()
		return 0, domain.ErrClosed
	}
	a.nextID++
	req.ID = a.nextID
	a.queue = append(a.queue, req)
	if a.quiet {
		a.idle = make(chan struct{})
		a.quiet = false
	}
	a.qmu.Unlock()

	a.notifyQueue()
	select {
	case a.wake <- struct{}{}:
	default:
	}
	return req.ID, nil
}

// Flush blocks until every queued request has completed, or ctx is done.
func (a *Animator) Flush(ctx context.Context) error {
	a.qmu.Lock()
	idle := a.idle
	a.qmu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker. An in-flight run is abandoned at its next
// suspension point and queued requests are dropped without their callbacks.
// Close must not be called from a hook or completion callback.
func (a *Animator) Close(ctx context.Context) error {
	a.qmu.Lock()
	if a.closed {
		a.qmu.Unlock()
		return nil
	}
	a.closed = true
	dropped := len(a.queue)
	a.queue = nil
	a.qmu.Unlock()

	if dropped > 0 {
		a.notifyQueue()
	}
	a.cancel()
	select {
	case <-a.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	a.qmu.Lock()
	a.state = domain.StateIdle
	if !a.quiet {
		close(a.idle)
		a.quiet = true
	}
	a.qmu.Unlock()

	if dropped > 0 {
		a.logger.Debug("queued requests dropped on close", "count", dropped)
	}
	return nil
}

// Text returns a snapshot of the buffer.
func (a *Animator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buffer.String()
}

// Length returns the buffer length in characters, prompt included.
func (a *Animator) Length() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buffer.Length()
}

// Prompt returns the prompt literal.
func (a *Animator) Prompt() string {
	return a.prompt
}

// State reports whether a run is active.
func (a *Animator) State() domain.RunState {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	return a.state
}

// Busy reports whether a run is active or waiting.
func (a *Animator) Busy() bool {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	return a.state == domain.StateRunning || len(a.queue) > 0
}

// Queued is the number of requests waiting behind the active run.
func (a *Animator) Queued() int {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	return len(a.queue)
}

// SkippedSteps counts out-of-range mutations seen over the animator lifetime.
func (a *Animator) SkippedSteps() int {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	return a.skipped
}

func (a *Animator) loop() {
	defer close(a.done)
	for {
		req, ok := a.dequeue()
		if !ok {
			select {
			case <-a.ctx.Done():
				return
			case <-a.wake:
				continue
			}
		}
		a.notifyQueue()
		if err := a.run(req); err != nil {
			return
		}
	}
}

// notifyQueue publishes the current depth. The depth is read under nmu so
// the last notification to complete always carries the latest value.
func (a *Animator) notifyQueue() {
	h := a.hooks.OnQueueChanged
	if h == nil {
		return
	}
	a.nmu.Lock()
	defer a.nmu.Unlock()
	h(a.ctx, &domain.QueueEvent{
		Timestamp: a.clock.Now(),
		Type:      domain.EventQueueChanged,
		Depth:     a.Queued(),
	})
}

func (a *Animator) dequeue() (domain.Request, bool) {
	a.qmu.Lock()
	defer a.qmu.Unlock()

	if a.closed || len(a.queue) == 0 {
		a.state = domain.StateIdle
		if !a.quiet {
			close(a.idle)
			a.quiet = true
		}
		return domain.Request{}, false
	}

	req := a.queue[0]
	a.queue[0] = domain.Request{}
	a.queue = a.queue[1:]
	a.state = domain.StateRunning
	return req, true
}

// run drains one request. It returns an error only when the animator was
// closed mid-run.
func (a *Animator) run(req domain.Request) error {
	s, ok := a.streamFor(req)
	if !ok {
		a.logger.Debug("nothing to animate", "request_id", req.ID, "kind", req.Kind)
		return nil
	}

	queued := a.Queued()
	begin := a.clock.Now()
	a.logger.Debug("run started", "request_id", req.ID, "kind", req.Kind, "queued", queued)
	if h := a.hooks.OnRunStarted; h != nil {
		h(a.ctx, &domain.RunEvent{
			Timestamp: begin,
			Type:      domain.EventRunStarted,
			RequestID: req.ID,
			Kind:      req.Kind,
			Queued:    queued,
		})
	}

	if err := s.Drain(a.ctx, a.clock); err != nil {
		a.logger.Debug("run abandoned", "request_id", req.ID, "kind", req.Kind, "steps", s.Steps())
		return err
	}

	end := a.clock.Now()
	a.qmu.Lock()
	a.skipped += s.Skipped()
	a.qmu.Unlock()

	a.logger.Debug("run completed", "request_id", req.ID, "kind", req.Kind, "chars", s.Steps(), "skipped", s.Skipped())
	if h := a.hooks.OnRunCompleted; h != nil {
		h(a.ctx, &domain.RunEvent{
			Timestamp: end,
			Type:      domain.EventRunCompleted,
			RequestID: req.ID,
			Kind:      req.Kind,
			Queued:    a.Queued(),
			Steps:     s.Steps(),
			Skipped:   s.Skipped(),
			Duration:  end.Sub(begin),
		})
	}
	if req.OnComplete != nil {
		req.OnComplete()
	}
	return nil
}

// streamFor resolves the request against the current buffer. Clear ranges
// are computed here rather than on submission so they see every earlier write.
func (a *Animator) streamFor(req domain.Request) (*stream.Stream, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	target := lockedBuffer{a}
	observer := stream.WithObserver(a.observe(req.ID))
	skip := stream.WithSkipSet(a.skipSet...)

	switch req.Kind {
	case domain.RequestWrite:
		return stream.NewInsert(target, req.Message, stream.WithDelay(a.writeDelay), skip, observer), true
	case domain.RequestClearRange:
		return stream.NewDelete(target, req.Start, req.Last, stream.WithDelay(a.clearDelay), skip, observer), true
	case domain.RequestClearAll:
		start, last := a.buffer.Length()-1, a.buffer.PromptLength()
		return stream.NewDelete(target, start, last, stream.WithDelay(a.clearDelay), skip, observer), true
	case domain.RequestClearLastLine:
		start, last, ok := a.buffer.LastLineRange(domain.Continuations()...)
		if !ok {
			return nil, false
		}
		return stream.NewDelete(target, start, last, stream.WithDelay(a.clearDelay), skip, observer), true
	default:
		a.logger.Warn("unknown request kind", "request_id", req.ID, "kind", req.Kind)
		return nil, false
	}
}

func (a *Animator) observe(requestID uint64) stream.Observer {
	return func(step stream.Step) {
		event := &domain.StepEvent{
			Timestamp: a.clock.Now(),
			RequestID: requestID,
			Index:     step.Index,
			Char:      step.Char,
		}
		switch {
		case step.Skipped:
			event.Type = domain.EventStepSkipped
			a.logger.Debug("step skipped", "request_id", requestID, "index", step.Index)
			if h := a.hooks.OnStepSkipped; h != nil {
				h(a.ctx, event)
			}
		case step.Mutation == stream.Insert:
			event.Type = domain.EventCharacterWritten
			if h := a.hooks.OnCharacterWritten; h != nil {
				h(a.ctx, event)
			}
		default:
			event.Type = domain.EventCharacterRemoved
			if h := a.hooks.OnCharacterRemoved; h != nil {
				h(a.ctx, event)
			}
		}
	}
}

// lockedBuffer lets readers snapshot the buffer between steps.
type lockedBuffer struct {
	a *Animator
}

func (l lockedBuffer) AppendRune(r rune) int {
	l.a.mu.Lock()
	defer l.a.mu.Unlock()
	return l.a.buffer.AppendRune(r)
}

func (l lockedBuffer) RemoveAt(index int) (rune, bool) {
	l.a.mu.Lock()
	defer l.a.mu.Unlock()
	return l.a.buffer.RemoveAt(index)
}

func format(message string, args []any) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
