package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/hackterm"
	httpadapter "github.com/aretw0/hackterm/pkg/adapters/http"
	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/adapters/process"
	"github.com/aretw0/hackterm/pkg/adapters/redis"
	"github.com/aretw0/hackterm/pkg/config"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/observability"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/script"
)

// environment is a console with its in-process collaborators.
type environment struct {
	console   *hackterm.Console
	scenes    *memory.SceneEmitter
	container *memory.Container
	streams   *httpadapter.StreamManager
	registry  *prometheus.Registry
	server    *http.Server
	cues      *process.Runner
	logger    *slog.Logger
	closers   []func(context.Context) error
}

type envOptions struct {
	cfg       config.Config
	audio     ports.AudioCueSink
	hooks     domain.LifecycleHooks
	redisAddr string
	httpAddr  string
	cuesPath  string
	logger    *slog.Logger
}

func newEnvironment(ctx context.Context, o envOptions) (*environment, error) {
	env := &environment{
		scenes:    memory.NewSceneEmitter(),
		container: memory.NewContainer(),
		streams:   httpadapter.NewStreamManager(o.logger),
		registry:  prometheus.NewRegistry(),
		logger:    o.logger,
	}
	metrics := observability.NewMetrics(env.registry)

	cues, err := process.LoadCues(o.cuesPath)
	if err != nil {
		return nil, err
	}
	env.cues = process.NewRunner(process.WithRegistry(cues), process.WithLogger(o.logger))

	opts := []hackterm.Option{
		hackterm.WithConfig(o.cfg),
		hackterm.WithAudioSink(o.audio),
		hackterm.WithWidgets(memory.NewFactory(), env.container),
		hackterm.WithSceneSource(env.scenes),
		hackterm.WithLogger(o.logger),
		hackterm.WithLifecycleHooks(domain.MergeHooks(
			o.hooks,
			metrics.Hooks(),
			env.streams.Hooks(),
			createDebugHooks(o.logger),
		)),
	}

	redisAddr := o.redisAddr
	if redisAddr == "" {
		redisAddr = o.cfg.Guard.RedisAddr
	}
	if redisAddr != "" {
		guard, err := redis.New(redisAddr,
			redis.WithPrefix(o.cfg.Guard.Prefix),
			redis.WithTTL(o.cfg.Guard.TTL),
		)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, func(context.Context) error { return guard.Close() })
		opts = append(opts, hackterm.WithInstanceGuard(guard))
	}

	console, err := hackterm.New(ctx, opts...)
	if err != nil {
		return nil, errors.Join(err, env.close(ctx))
	}
	env.console = console
	// The console must stop before its guard's connection closes.
	env.closers = append([]func(context.Context) error{console.Close}, env.closers...)

	if o.httpAddr != "" {
		env.serve(o.httpAddr)
	}
	return env, nil
}

func (env *environment) serve(addr string) {
	handler := httpadapter.NewHandler(env.console, env.streams,
		httpadapter.WithMetricsHandler(promhttp.HandlerFor(env.registry, promhttp.HandlerOpts{})),
		httpadapter.WithLogger(env.logger),
	)
	env.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		env.logger.Info("http server listening", "addr", addr)
		if err := env.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			env.logger.Error("http server failed", "err", err)
		}
	}()
	env.closers = append([]func(context.Context) error{env.server.Shutdown}, env.closers...)
}

func (env *environment) close(ctx context.Context) error {
	var errs []error
	for _, c := range env.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	env.closers = nil
	return errors.Join(errs...)
}

// playerOptions answers every cue in names. Cues with a configured command
// run it; the rest are logged. "unload_scene" also unloads the current scene.
func (env *environment) playerOptions(names []string) []script.PlayerOption {
	opts := []script.PlayerOption{script.WithLogger(env.logger)}
	for _, name := range names {
		if env.cues.Has(name) {
			opts = append(opts, script.WithCue(name, env.cues.Handler(name)))
			continue
		}
		opts = append(opts, script.WithCue(name, func(ctx context.Context) error {
			env.logger.Info("cue", "name", name)
			if name == "unload_scene" {
				env.scenes.Unload("script")
			}
			return nil
		}))
	}
	return opts
}

func closeWithTimeout(env *environment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.close(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
