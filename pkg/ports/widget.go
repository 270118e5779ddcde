package ports

import "github.com/aretw0/hackterm/pkg/domain"

// Widget is a handle to a spawned UI element.
type Widget interface {
	ID() string
	Kind() domain.WidgetKind
	Show(payload domain.VariablePayload)
	SetInteractable(enabled bool)
}

// Container is the parent element inspector widgets are spawned into.
type Container interface {
	// Children returns the widgets currently parented to the container,
	// including auxiliary inputs spawned by other parts of the UI.
	Children() []Widget

	// Relayout recomputes the container layout after its children changed.
	Relayout()
}

// WidgetFactory spawns and destroys widgets.
type WidgetFactory interface {
	Spawn(template string, parent Container) (Widget, error)
	Destroy(w Widget) error
}
