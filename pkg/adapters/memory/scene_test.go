package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneEmitter_UnloadAndUnsubscribe(t *testing.T) {
	e := NewSceneEmitter()
	var got []string

	unsubA := e.OnSceneUnloaded(func(scene string) { got = append(got, "a:"+scene) })
	unsubB := e.OnSceneUnloaded(func(scene string) { got = append(got, "b:"+scene) })
	assert.Equal(t, 2, e.Listeners())

	e.Unload("level-1")
	assert.Equal(t, []string{"a:level-1", "b:level-1"}, got)

	unsubA()
	unsubA()
	assert.Equal(t, 1, e.Listeners())

	e.Unload("level-2")
	assert.Equal(t, []string{"a:level-1", "b:level-1", "b:level-2"}, got)

	unsubB()
	assert.Zero(t, e.Listeners())
}
