package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// Entry is one live variable inspector.
// The widget is owned by the entry: removing the entry destroys it.
type Entry struct {
	Name         string
	Widget       ports.Widget
	Interactable bool
	Payload      domain.VariablePayload
}

// Registry manages the variable inspector widgets, keyed by name.
type Registry struct {
	mu        sync.RWMutex
	entries   []*Entry
	byName    map[string]*Entry
	factory   ports.WidgetFactory
	container ports.Container
	template  string
	logger    *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithTemplate sets the widget template spawned for new entries.
func WithTemplate(template string) Option {
	return func(r *Registry) {
		r.template = template
	}
}

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry spawning into container.
func NewRegistry(factory ports.WidgetFactory, container ports.Container, opts ...Option) (*Registry, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: widget factory", domain.ErrMissingCollaborator)
	}
	if container == nil {
		return nil, fmt.Errorf("%w: variables container", domain.ErrMissingCollaborator)
	}
	r := &Registry{
		byName:    make(map[string]*Entry),
		factory:   factory,
		container: container,
		template:  domain.DefaultVariableTemplate,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Upsert shows value under name.
// An existing entry is updated in place; otherwise a widget is spawned,
// appended, and the container layout is rebuilt.
func (r *Registry) Upsert(name string, value any, visibility domain.Visibility) error {
	payload := domain.VariablePayload{
		Name:       name,
		Value:      value,
		Attributes: Inspect(value, visibility),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.byName[name]; ok {
		entry.Payload = payload
		entry.Widget.Show(payload)
		r.logger.Debug("variable updated", "name", name)
		return nil
	}

	w, err := r.factory.Spawn(r.template, r.container)
	if err != nil {
		return fmt.Errorf("failed to spawn widget for %q: %w", name, err)
	}
	w.Show(payload)
	w.SetInteractable(true)

	entry := &Entry{Name: name, Widget: w, Interactable: true, Payload: payload}
	r.entries = append(r.entries, entry)
	r.byName[name] = entry
	r.container.Relayout()

	r.logger.Debug("variable added", "name", name, "widget_id", w.ID())
	return nil
}

// Remove destroys the entry for name.
// Returns domain.ErrVariableNotFound if there is none.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrVariableNotFound, name)
	}

	delete(r.byName, name)
	for i, e := range r.entries {
		if e == entry {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	err := r.factory.Destroy(entry.Widget)
	r.container.Relayout()
	return err
}

// RemoveAll destroys every entry widget, then every auxiliary input widget
// (dropdowns, text fields) parented to the container, and empties the registry.
// Destruction continues past failures; all failures are returned joined.
func (r *Registry) RemoveAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		if err := r.factory.Destroy(r.entries[i].Widget); err != nil {
			errs = append(errs, fmt.Errorf("destroy %q: %w", r.entries[i].Name, err))
		}
	}
	removed := len(r.entries)
	r.entries = nil
	r.byName = make(map[string]*Entry)

	aux := 0
	children := r.container.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if !children[i].Kind().IsAuxiliaryInput() {
			continue
		}
		if err := r.factory.Destroy(children[i]); err != nil {
			errs = append(errs, fmt.Errorf("destroy %s: %w", children[i].ID(), err))
			continue
		}
		aux++
	}
	r.container.Relayout()

	r.logger.Debug("variables removed", "entries", removed, "aux_inputs", aux)
	return errors.Join(errs...)
}

// SetInteractable toggles input on every entry widget.
func (r *Registry) SetInteractable(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		e.Widget.SetInteractable(enabled)
		e.Interactable = enabled
	}
}

// Len is the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns the entry names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}
