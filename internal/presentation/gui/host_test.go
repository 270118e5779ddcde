package gui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/hackterm/internal/presentation/gui"
	"github.com/aretw0/hackterm/pkg/domain"
)

func TestConsoleLines(t *testing.T) {
	text := ">\tfirst\n\tsecond\n>\t"

	assert.Equal(t, []string{">   first", "    second", ">   "}, gui.ConsoleLines(text, 0))
	assert.Equal(t, []string{"    second", ">   "}, gui.ConsoleLines(text, 2))
}

func TestInspectorLines(t *testing.T) {
	payload := domain.VariablePayload{
		Name: "door",
		Attributes: []domain.Attribute{
			{Key: "Locked", Value: true},
			{Key: "Floor", Value: 2},
		},
	}

	assert.Equal(t, []string{"door", "  Locked: true", "  Floor: 2"},
		gui.InspectorLines(domain.WidgetVariable, payload))
	assert.Equal(t, []string{"[dropdown]"}, gui.InspectorLines(domain.WidgetDropdown, domain.VariablePayload{}))
}
