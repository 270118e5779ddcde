package cli

import (
	"context"

	"github.com/aretw0/hackterm/internal/presentation/gui"
	"github.com/aretw0/hackterm/pkg/config"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/script"
)

// GUIOptions configures the graphical host.
type GUIOptions struct {
	ConfigPath string
	ScriptPath string
	CuesPath   string
	Debug      bool
	HTTPAddr   string
	Width      int
	Height     int
}

// RunGUI opens a window showing the console and plays the script in the
// background. It blocks until the window is closed.
func RunGUI(ctx context.Context, opts GUIOptions) error {
	logger := createLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	s, err := loadScript(opts.ScriptPath)
	if err != nil {
		return err
	}

	env, err := newEnvironment(ctx, envOptions{
		cfg:      cfg,
		audio:    ports.AudioCueFuncs{},
		httpAddr: opts.HTTPAddr,
		cuesPath: opts.CuesPath,
		logger:   logger,
	})
	if err != nil {
		return err
	}

	playCtx, stop := context.WithCancel(ctx)
	go func() {
		player := script.NewPlayer(env.console, env.playerOptions(s.Cues())...)
		if err := player.Play(playCtx, s); handleExecutionError(err) != nil {
			logger.Error("script failed", "script", s.Name, "err", err)
		}
	}()

	host := gui.NewHost(env.console, env.container, opts.Width, opts.Height)
	err = gui.Run(host, "hackterm")
	stop()

	if cerr := closeWithTimeout(env); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
