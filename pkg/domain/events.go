package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStarted       EventType = "run_started"
	EventRunCompleted     EventType = "run_completed"
	EventCharacterWritten EventType = "character_written"
	EventCharacterRemoved EventType = "character_removed"
	EventStepSkipped      EventType = "step_skipped"
	EventQueueChanged     EventType = "queue_changed"
)

// RunEvent marks the boundaries of a run.
type RunEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	RequestID uint64      `json:"request_id"`
	Kind      RequestKind `json:"kind"`

	// Queued is the number of requests still waiting when the event fired.
	Queued int `json:"queued"`

	// The fields below are only set on completion.
	Steps    int           `json:"steps,omitempty"`
	Skipped  int           `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// StepEvent reports a single character mutation.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RequestID uint64    `json:"request_id"`
	Index     int       `json:"index"`
	Char      rune      `json:"char"`
}

// QueueEvent reports the number of requests waiting behind the active run.
// It fires whenever a request is queued, dequeued or dropped.
type QueueEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Depth     int       `json:"depth"`
}

// LifecycleHooks defines callbacks for animator observability.
// Hooks run on the animator worker and must not block.
type LifecycleHooks struct {
	OnRunStarted       func(context.Context, *RunEvent)
	OnRunCompleted     func(context.Context, *RunEvent)
	OnCharacterWritten func(context.Context, *StepEvent)
	OnCharacterRemoved func(context.Context, *StepEvent)
	OnStepSkipped      func(context.Context, *StepEvent)

	// OnQueueChanged may also run on the submitting goroutine. It must not
	// submit requests itself.
	OnQueueChanged func(context.Context, *QueueEvent)
}

// MergeHooks fans every event out to each of the given hook sets, in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range hooks {
		merged.OnRunStarted = chainRun(merged.OnRunStarted, h.OnRunStarted)
		merged.OnRunCompleted = chainRun(merged.OnRunCompleted, h.OnRunCompleted)
		merged.OnCharacterWritten = chainStep(merged.OnCharacterWritten, h.OnCharacterWritten)
		merged.OnCharacterRemoved = chainStep(merged.OnCharacterRemoved, h.OnCharacterRemoved)
		merged.OnStepSkipped = chainStep(merged.OnStepSkipped, h.OnStepSkipped)
		merged.OnQueueChanged = chainQueue(merged.OnQueueChanged, h.OnQueueChanged)
	}
	return merged
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainQueue(a, b func(context.Context, *QueueEvent)) func(context.Context, *QueueEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *QueueEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
