package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ClosesClientWhenPingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	var created *backend.Client
	orig := newClient
	newClient = func(opt *backend.Options) *backend.Client {
		created = orig(opt)
		return created
	}
	t.Cleanup(func() { newClient = orig })

	_, err := New(addr)
	require.Error(t, err)
	require.NotNil(t, created)

	err = created.Ping(context.Background()).Err()
	assert.ErrorIs(t, err, backend.ErrClosed)
}
