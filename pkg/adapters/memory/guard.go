package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// Guard implements ports.InstanceGuard within a single process.
// Safe for concurrent use.
type Guard struct {
	mu    sync.Mutex
	seq   uint64
	owner map[string]uint64
}

// NewGuard creates a guard with no held keys.
func NewGuard() *Guard {
	return &Guard{owner: make(map[string]uint64)}
}

// DefaultGuard is the process-wide guard used when a console is built without one.
var DefaultGuard = NewGuard()

// Acquire claims key, failing fast if it is already held.
func (g *Guard) Acquire(ctx context.Context, key string) (ports.ReleaseFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.owner[key]; held {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateInstance, key)
	}
	g.seq++
	token := g.seq
	g.owner[key] = token

	return func(ctx context.Context) error {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.owner[key] == token {
			delete(g.owner, key)
		}
		return nil
	}, nil
}

// Held reports whether key is currently claimed.
func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.owner[key]
	return held
}
