package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/hackterm/internal/presentation/tui"
	"github.com/aretw0/hackterm/pkg/config"
	"github.com/aretw0/hackterm/pkg/ports"
	"github.com/aretw0/hackterm/pkg/script"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ConfigPath string
	ScriptPath string // empty plays the built-in tutorial
	CuesPath   string
	Debug      bool
	Instant    bool // no per-character delays
	Hold       bool // keep serving after the script ends, until interrupted
	RedisAddr  string
	HTTPAddr   string
	Out        io.Writer
}

// Execute plays a script on a console mirrored to opts.Out.
func Execute(ctx context.Context, opts RunOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := createLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	s, err := loadScript(opts.ScriptPath)
	if err != nil {
		return err
	}

	interactive := isTerminal(out)
	if opts.Instant || !interactive {
		cfg.WriteDelay, cfg.ClearDelay = 0, 0
	}

	var audio ports.AudioCueSink = ports.AudioCueFuncs{}
	if interactive {
		tui.PrintBanner(out)
		audio = tui.NewIndicator(out, "hackterm", "hackterm - hacking...")
	}
	presenter := tui.NewPresenter(out)

	env, err := newEnvironment(ctx, envOptions{
		cfg:       cfg,
		audio:     audio,
		hooks:     presenter.Hooks(),
		redisAddr: opts.RedisAddr,
		httpAddr:  opts.HTTPAddr,
		cuesPath:  opts.CuesPath,
		logger:    logger,
	})
	if err != nil {
		return err
	}
	presenter.Start(env.console.Text())

	player := script.NewPlayer(env.console, env.playerOptions(s.Cues())...)
	err = player.Play(ctx, s)
	fmt.Fprintln(out)

	if err == nil && opts.Hold {
		printSystemMessage(out, "Script finished. Press Ctrl+C to exit.")
		<-ctx.Done()
	}

	if cerr := closeWithTimeout(env); cerr != nil && err == nil {
		err = cerr
	}
	return handleExecutionError(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
