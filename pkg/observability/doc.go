/*
Package observability turns console lifecycle events into Prometheus metrics.

Metrics plugs into domain.LifecycleHooks, so it can be merged with any other
observer and passed to the console with WithLifecycleHooks:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	console, err := hackterm.New(ctx, hackterm.WithLifecycleHooks(metrics.Hooks()), ...)
*/
package observability
