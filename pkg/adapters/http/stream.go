package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/domain"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  []byte
}

// StreamManager fans console lifecycle events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Message]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates a manager with no subscribers.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new listener. Call the returned func to leave.
func (sm *StreamManager) Subscribe() (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 64)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Subscribers is the number of connected listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends msg to every subscriber. Slow subscribers miss messages.
func (sm *StreamManager) Broadcast(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("sse client buffer full, dropping message", "event", msg.Event)
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every console event.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	run := func(ctx context.Context, e *domain.RunEvent) {
		sm.publish(string(e.Type), e)
	}
	step := func(ctx context.Context, e *domain.StepEvent) {
		sm.publish(string(e.Type), e)
	}
	return domain.LifecycleHooks{
		OnRunStarted:       run,
		OnRunCompleted:     run,
		OnCharacterWritten: step,
		OnCharacterRemoved: step,
		OnStepSkipped:      step,
	}
}

func (sm *StreamManager) publish(event string, v any) {
	if sm.Subscribers() == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("failed to encode event", "event", event, "err", err)
		return
	}
	sm.Broadcast(Message{Event: event, Data: data})
}
