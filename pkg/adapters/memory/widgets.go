package memory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// ErrForeignParent is returned when a widget is spawned into a container
// that does not belong to this package.
var ErrForeignParent = errors.New("parent is not a memory container")

// Widget is a retained, in-memory UI element.
// Safe for concurrent use.
type Widget struct {
	id       string
	kind     domain.WidgetKind
	template string

	mu           sync.RWMutex
	payload      domain.VariablePayload
	interactable bool
	destroyed    bool
}

func (w *Widget) ID() string              { return w.id }
func (w *Widget) Kind() domain.WidgetKind { return w.kind }
func (w *Widget) Template() string        { return w.template }

func (w *Widget) Show(payload domain.VariablePayload) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payload = payload
}

func (w *Widget) SetInteractable(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interactable = enabled
}

// Payload returns what the widget currently displays.
func (w *Widget) Payload() domain.VariablePayload {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.payload
}

// Interactable reports whether the widget accepts input.
func (w *Widget) Interactable() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.interactable
}

// Destroyed reports whether the widget has been destroyed.
func (w *Widget) Destroyed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.destroyed
}

// Container is an ordered list of child widgets.
// Safe for concurrent use.
type Container struct {
	mu        sync.RWMutex
	children  []*Widget
	relayouts int
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Children() []ports.Widget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ports.Widget, len(c.children))
	for i, w := range c.children {
		out[i] = w
	}
	return out
}

// Widgets returns the concrete children, for hosts that draw them.
func (c *Container) Widgets() []*Widget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Widget(nil), c.children...)
}

func (c *Container) Relayout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.relayouts++
}

// Relayouts counts layout rebuilds.
func (c *Container) Relayouts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.relayouts
}

// Len is the number of live children.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.children)
}

func (c *Container) add(w *Widget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, w)
}

func (c *Container) remove(w *Widget) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, child := range c.children {
		if child == w {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Factory spawns widgets into memory containers.
type Factory struct {
	seq     atomic.Uint64
	mu      sync.Mutex
	parents map[*Widget]*Container
}

// NewFactory creates a widget factory.
func NewFactory() *Factory {
	return &Factory{parents: make(map[*Widget]*Container)}
}

// Spawn creates a variable widget from template under parent.
func (f *Factory) Spawn(template string, parent ports.Container) (ports.Widget, error) {
	return f.SpawnKind(domain.WidgetVariable, template, parent)
}

// SpawnKind creates a widget of any kind, e.g. an auxiliary dropdown opened by
// a variable widget.
func (f *Factory) SpawnKind(kind domain.WidgetKind, template string, parent ports.Container) (*Widget, error) {
	c, ok := parent.(*Container)
	if !ok || c == nil {
		return nil, ErrForeignParent
	}
	w := &Widget{
		id:       fmt.Sprintf("%s-%d", kind, f.seq.Add(1)),
		kind:     kind,
		template: template,
	}
	c.add(w)

	f.mu.Lock()
	f.parents[w] = c
	f.mu.Unlock()
	return w, nil
}

// Destroy detaches the widget from its parent. Destroying twice is a no-op.
func (f *Factory) Destroy(pw ports.Widget) error {
	w, ok := pw.(*Widget)
	if !ok || w == nil {
		return fmt.Errorf("cannot destroy foreign widget %T", pw)
	}

	f.mu.Lock()
	parent := f.parents[w]
	delete(f.parents, w)
	f.mu.Unlock()

	w.mu.Lock()
	w.destroyed = true
	w.interactable = false
	w.mu.Unlock()

	if parent != nil {
		parent.remove(w)
	}
	return nil
}

// Live is the number of spawned widgets not yet destroyed.
func (f *Factory) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.parents)
}
