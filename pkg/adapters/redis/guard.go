// Package redis provides a Redis-backed ports.InstanceGuard, so a single
// console can be enforced across processes sharing one Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// newClient is swapped in tests to observe the client New creates.
var newClient = backend.NewClient

// Guard implements ports.InstanceGuard using SET NX.
type Guard struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Guard.
type Option func(*Guard)

// WithPrefix sets the key prefix (default "hackterm:").
func WithPrefix(prefix string) Option {
	return func(g *Guard) {
		g.prefix = prefix
	}
}

// WithTTL expires a claim that is never released, e.g. after a crash.
// Zero (the default) keeps claims until released.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		g.ttl = ttl
	}
}

// New connects to addr and returns a guard.
func New(addr string, opts ...Option) (*Guard, error) {
	client := newClient(&backend.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewFromClient(client, opts...), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Guard {
	g := &Guard{
		client: client,
		prefix: "hackterm:",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire claims key, failing fast if another holder has it.
func (g *Guard) Acquire(ctx context.Context, key string) (ports.ReleaseFunc, error) {
	instanceKey := g.prefix + "instance:" + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, instanceKey, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateInstance, key)
	}

	return func(ctx context.Context) error {
		if err := g.client.Eval(ctx, releaseScript, []string{instanceKey}, token).Err(); err != nil {
			return fmt.Errorf("redis error releasing %s: %w", key, err)
		}
		return nil
	}, nil
}

// Close closes the underlying client.
func (g *Guard) Close() error {
	return g.client.Close()
}
