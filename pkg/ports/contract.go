package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunInstanceGuardContract runs a suite of tests to verify that an InstanceGuard implementation
// adheres to the defined interface contract.
func RunInstanceGuardContract(t *testing.T, guard InstanceGuard) {
	ctx := context.Background()
	key := "contract-test-console-" + time.Now().Format("20060102150405.000000")

	t.Run("Acquire and Release", func(t *testing.T) {
		release, err := guard.Acquire(ctx, key)
		require.NoError(t, err, "first Acquire should succeed")
		require.NotNil(t, release)

		require.NoError(t, release(ctx), "Release should not return error")

		release, err = guard.Acquire(ctx, key)
		require.NoError(t, err, "Acquire after Release should succeed")
		require.NoError(t, release(ctx))
	})

	t.Run("Duplicate Acquire", func(t *testing.T) {
		release, err := guard.Acquire(ctx, key)
		require.NoError(t, err)
		defer release(ctx)

		_, err = guard.Acquire(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDuplicateInstance)
	})

	t.Run("Independent Keys", func(t *testing.T) {
		r1, err := guard.Acquire(ctx, key+"-a")
		require.NoError(t, err)
		defer r1(ctx)

		r2, err := guard.Acquire(ctx, key+"-b")
		require.NoError(t, err, "different keys must not collide")
		defer r2(ctx)
	})

	t.Run("Release Twice", func(t *testing.T) {
		release, err := guard.Acquire(ctx, key)
		require.NoError(t, err)
		require.NoError(t, release(ctx))
		assert.NoError(t, release(ctx), "a second release is a no-op")
	})
}
