package registry_test

import (
	"errors"
	"testing"

	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*registry.Registry, *memory.Factory, *memory.Container) {
	t.Helper()
	factory := memory.NewFactory()
	container := memory.NewContainer()
	reg, err := registry.NewRegistry(factory, container)
	require.NoError(t, err)
	return reg, factory, container
}

func TestNewRegistry_MissingCollaborators(t *testing.T) {
	_, err := registry.NewRegistry(nil, memory.NewContainer())
	assert.ErrorIs(t, err, domain.ErrMissingCollaborator)

	_, err = registry.NewRegistry(memory.NewFactory(), nil)
	assert.ErrorIs(t, err, domain.ErrMissingCollaborator)
}

func TestRegistry_UpsertIsIdempotentPerName(t *testing.T) {
	reg, factory, container := setup(t)

	require.NoError(t, reg.Upsert("x", 1, nil))
	require.NoError(t, reg.Upsert("x", 2, nil))

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, factory.Live())
	assert.Equal(t, 1, container.Relayouts(), "layout is rebuilt only when an entry is added")

	entry, ok := reg.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Payload.Value)
	assert.Equal(t, 2, entry.Widget.(*memory.Widget).Payload().Value, "the widget shows the new value")
}

func TestRegistry_UpsertSpawnsInOrder(t *testing.T) {
	reg, _, container := setup(t)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Upsert(name, name, nil))
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
	assert.Equal(t, 3, container.Len())
	entry, _ := reg.Get("b")
	assert.True(t, entry.Interactable)
	assert.Equal(t, domain.DefaultVariableTemplate, entry.Widget.(*memory.Widget).Template())
}

func TestRegistry_RemoveAll(t *testing.T) {
	reg, factory, container := setup(t)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Upsert(name, 0, nil))
	}
	_, err := factory.SpawnKind(domain.WidgetDropdown, "enum", container)
	require.NoError(t, err)
	_, err = factory.SpawnKind(domain.WidgetTextField, "input", container)
	require.NoError(t, err)
	require.Equal(t, 5, container.Len())

	require.NoError(t, reg.RemoveAll())

	assert.Zero(t, reg.Len())
	assert.Zero(t, factory.Live())
	assert.Zero(t, container.Len())
}

func TestRegistry_Remove(t *testing.T) {
	reg, factory, _ := setup(t)
	require.NoError(t, reg.Upsert("a", 1, nil))
	require.NoError(t, reg.Upsert("b", 2, nil))

	require.NoError(t, reg.Remove("a"))
	assert.Equal(t, []string{"b"}, reg.Names())
	assert.Equal(t, 1, factory.Live())

	err := reg.Remove("a")
	assert.ErrorIs(t, err, domain.ErrVariableNotFound)
}

func TestRegistry_SetInteractable(t *testing.T) {
	reg, _, container := setup(t)
	require.NoError(t, reg.Upsert("a", 1, nil))
	require.NoError(t, reg.Upsert("b", 2, nil))

	reg.SetInteractable(false)
	for _, w := range container.Widgets() {
		assert.False(t, w.Interactable())
	}
	e, _ := reg.Get("a")
	assert.False(t, e.Interactable)

	reg.SetInteractable(true)
	for _, w := range container.Widgets() {
		assert.True(t, w.Interactable())
	}
}

type failingFactory struct {
	*memory.Factory
	failSpawn   bool
	failDestroy bool
}

func (f *failingFactory) Spawn(template string, parent ports.Container) (ports.Widget, error) {
	if f.failSpawn {
		return nil, errors.New("pool exhausted")
	}
	return f.Factory.Spawn(template, parent)
}

func (f *failingFactory) Destroy(w ports.Widget) error {
	if f.failDestroy {
		return errors.New("already gone")
	}
	return f.Factory.Destroy(w)
}

func TestRegistry_FactoryFailures(t *testing.T) {
	factory := &failingFactory{Factory: memory.NewFactory()}
	reg, err := registry.NewRegistry(factory, memory.NewContainer(), registry.WithTemplate("inspector"))
	require.NoError(t, err)

	factory.failSpawn = true
	assert.Error(t, reg.Upsert("a", 1, nil))
	assert.Zero(t, reg.Len())

	factory.failSpawn = false
	require.NoError(t, reg.Upsert("a", 1, nil))
	require.NoError(t, reg.Upsert("b", 1, nil))

	factory.failDestroy = true
	err = reg.RemoveAll()
	assert.Error(t, err)
	assert.Zero(t, reg.Len(), "entries are dropped even when a destroy fails")
}
