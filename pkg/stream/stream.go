// Package stream produces the per-character mutation steps of a console run.
package stream

import (
	"context"
	"iter"
	"time"

	"github.com/aretw0/hackterm/pkg/ports"
)

// Mutation is the kind of change a step applies.
type Mutation int

const (
	Insert Mutation = iota
	Delete
)

func (m Mutation) String() string {
	if m == Delete {
		return "delete"
	}
	return "insert"
}

// Target is the text a stream mutates.
type Target interface {
	AppendRune(r rune) int
	RemoveAt(index int) (rune, bool)
}

// Step is the outcome of applying one mutation.
type Step struct {
	Mutation Mutation
	Index    int
	Char     rune

	// Skipped is set when a delete index was out of range. Nothing changed.
	Skipped bool

	// Delay is how long to wait before the next step.
	Delay time.Duration
}

// Observer is notified after every step, skipped steps included.
type Observer func(Step)

// Option configures a Stream.
type Option func(*Stream)

// WithDelay sets the pause after each character outside the skip-set.
func WithDelay(d time.Duration) Option {
	return func(s *Stream) {
		s.delay = d
	}
}

// WithSkipSet sets the characters that never pause the stream.
func WithSkipSet(chars ...rune) Option {
	return func(s *Stream) {
		s.skip = make(map[rune]struct{}, len(chars))
		for _, c := range chars {
			s.skip[c] = struct{}{}
		}
	}
}

// WithObserver registers the per-step callback.
func WithObserver(fn Observer) Option {
	return func(s *Stream) {
		s.observer = fn
	}
}

// Stream is a lazy, finite, single-use sequence of mutations against a Target.
type Stream struct {
	target   Target
	mutation Mutation
	runes    []rune
	cursor   int // next rune (insert) or next index (delete)
	last     int // lowest index to delete, inclusive
	delay    time.Duration
	skip     map[rune]struct{}
	observer Observer

	steps   int
	skipped int
}

// NewInsert creates a stream that appends text to target left to right.
func NewInsert(target Target, text string, opts ...Option) *Stream {
	s := &Stream{
		target:   target,
		mutation: Insert,
		runes:    []rune(text),
	}
	return s.apply(opts)
}

// NewDelete creates a stream that removes indices start down to last, inclusive.
// An empty range (start < last) yields no steps.
func NewDelete(target Target, start, last int, opts ...Option) *Stream {
	s := &Stream{
		target:   target,
		mutation: Delete,
		cursor:   start,
		last:     last,
	}
	return s.apply(opts)
}

func (s *Stream) apply(opts []Option) *Stream {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next applies the next mutation and reports it. It returns false once the
// stream is exhausted.
func (s *Stream) Next() (Step, bool) {
	var step Step
	switch s.mutation {
	case Insert:
		if s.cursor >= len(s.runes) {
			return Step{}, false
		}
		r := s.runes[s.cursor]
		s.cursor++
		step = Step{Mutation: Insert, Char: r, Index: s.target.AppendRune(r)}
	case Delete:
		if s.cursor < s.last {
			return Step{}, false
		}
		idx := s.cursor
		s.cursor--
		r, ok := s.target.RemoveAt(idx)
		step = Step{Mutation: Delete, Index: idx, Char: r, Skipped: !ok}
	}

	s.steps++
	if step.Skipped {
		s.skipped++
	} else if _, fast := s.skip[step.Char]; !fast {
		step.Delay = s.delay
	}

	if s.observer != nil {
		s.observer(step)
	}
	return step, true
}

// All returns the remaining steps as an iterator. Each step is applied as it
// is pulled.
func (s *Stream) All() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			step, ok := s.Next()
			if !ok || !yield(step) {
				return
			}
		}
	}
}

// Drain applies every remaining step, sleeping on clock between them.
// When ctx is done the pending continuation is abandoned and ctx.Err() is
// returned; no further mutation happens.
func (s *Stream) Drain(ctx context.Context, clock ports.Clock) error {
	for step := range s.All() {
		if step.Delay <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if err := clock.Sleep(ctx, step.Delay); err != nil {
			return err
		}
	}
	return nil
}

// Steps is the number of steps taken so far, skipped ones included.
func (s *Stream) Steps() int {
	return s.steps
}

// Skipped is the number of out-of-range steps taken so far.
func (s *Stream) Skipped() int {
	return s.skipped
}
