package ports

import (
	"context"
	"time"
)

// Clock is the real-time delay primitive used to pace animations.
// Implementations must not be affected by a paused simulation.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case.
	Sleep(ctx context.Context, d time.Duration) error
}
