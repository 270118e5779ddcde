package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hackterm/internal/testutils"
	"github.com/aretw0/hackterm/pkg/animator"
	"github.com/aretw0/hackterm/pkg/observability"
)

func TestMetrics_FromAnimator(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	a := animator.New(
		animator.WithClock(testutils.NewFakeClock()),
		animator.WithLifecycleHooks(metrics.Hooks()),
	)
	defer a.Close(context.Background())

	a.Write("ab")        // a, b, \n, \t
	a.Clear()            // removes the same four
	a.ClearRange(50, 48) // three out-of-range steps
	a.ClearLastLine()    // nothing to clear, no run

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Flush(ctx))

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.CharactersWritten))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.CharactersRemoved))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.StepsSkipped))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsStarted.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsCompleted.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsCompleted.WithLabelValues("clear_all")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsCompleted.WithLabelValues("clear_range")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.QueueDepth))

	assert.Equal(t, 3, testutil.CollectAndCount(metrics.RunDuration))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	assert.Panics(t, func() { observability.NewMetrics(reg) }, "duplicate registration")
	assert.NotPanics(t, func() { observability.NewMetrics(nil) })
}
