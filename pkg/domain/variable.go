package domain

// Visibility maps an attribute key to whether the inspector shows it.
// Keys that are absent are shown.
type Visibility map[string]bool

// Shows reports whether the attribute key is visible.
func (v Visibility) Shows(key string) bool {
	shown, ok := v[key]
	return !ok || shown
}

// Attribute is one displayed facet of an inspected value.
type Attribute struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// VariablePayload is what an inspector widget displays.
type VariablePayload struct {
	Name       string      `json:"name"`
	Value      any         `json:"value"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// WidgetKind classifies spawned UI elements.
type WidgetKind string

const (
	WidgetVariable  WidgetKind = "variable"
	WidgetDropdown  WidgetKind = "dropdown"
	WidgetTextField WidgetKind = "text_field"
)

// IsAuxiliaryInput reports whether the kind is a transient input widget
// that is torn down together with the inspector entries.
func (k WidgetKind) IsAuxiliaryInput() bool {
	return k == WidgetDropdown || k == WidgetTextField
}
