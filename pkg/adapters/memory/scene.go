package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/hackterm/pkg/ports"
)

// SceneEmitter is an in-process ports.SceneSource.
// Hosts call Unload when their scene manager tears a scene down.
type SceneEmitter struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(scene string)
}

// NewSceneEmitter creates an emitter with no listeners.
func NewSceneEmitter() *SceneEmitter {
	return &SceneEmitter{listeners: make(map[int]func(string))}
}

func (e *SceneEmitter) OnSceneUnloaded(fn func(scene string)) ports.UnsubscribeFunc {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.listeners, id)
		})
	}
}

// Unload notifies every listener, in subscription order, that scene was unloaded.
func (e *SceneEmitter) Unload(scene string) {
	e.mu.Lock()
	ids := slices.Sorted(maps.Keys(e.listeners))
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, e.listeners[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(scene)
	}
}

// Listeners is the number of attached listeners.
func (e *SceneEmitter) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
