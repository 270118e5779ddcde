package memory

import (
	"testing"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_SpawnAndDestroy(t *testing.T) {
	f := NewFactory()
	c := NewContainer()

	w, err := f.Spawn("variable", c)
	require.NoError(t, err)
	assert.Equal(t, domain.WidgetVariable, w.Kind())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, f.Live())

	dd, err := f.SpawnKind(domain.WidgetDropdown, "enum", c)
	require.NoError(t, err)
	assert.NotEqual(t, w.ID(), dd.ID())
	assert.Equal(t, 2, c.Len())

	require.NoError(t, f.Destroy(w))
	assert.True(t, w.(*Widget).Destroyed())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, f.Live())

	require.NoError(t, f.Destroy(w), "destroying twice is a no-op")
	assert.Equal(t, 1, c.Len())
}

func TestFactory_ForeignParent(t *testing.T) {
	f := NewFactory()
	_, err := f.SpawnKind(domain.WidgetVariable, "variable", nil)
	assert.ErrorIs(t, err, ErrForeignParent)
}

func TestWidget_ShowAndInteractable(t *testing.T) {
	f := NewFactory()
	c := NewContainer()
	w, err := f.SpawnKind(domain.WidgetVariable, "variable", c)
	require.NoError(t, err)

	w.Show(domain.VariablePayload{Name: "hp", Value: 10})
	w.SetInteractable(true)

	assert.Equal(t, "hp", w.Payload().Name)
	assert.True(t, w.Interactable())
	assert.Equal(t, "variable", w.Template())

	c.Relayout()
	assert.Equal(t, 1, c.Relayouts())
	assert.Len(t, c.Widgets(), 1)
}
