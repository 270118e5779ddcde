package memory

import (
	"context"
	"testing"

	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Contract(t *testing.T) {
	ports.RunInstanceGuardContract(t, NewGuard())
}

func TestGuard_StaleReleaseKeepsNewOwner(t *testing.T) {
	g := NewGuard()
	ctx := context.Background()

	first, err := g.Acquire(ctx, "console")
	require.NoError(t, err)
	require.NoError(t, first(ctx))

	second, err := g.Acquire(ctx, "console")
	require.NoError(t, err)
	defer second(ctx)

	require.NoError(t, first(ctx))
	assert.True(t, g.Held("console"), "a stale release must not free the new owner's slot")
}

func TestGuard_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGuard().Acquire(ctx, "console")
	assert.ErrorIs(t, err, context.Canceled)
}
