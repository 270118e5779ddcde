package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/hackterm/internal/cli"
)

var guiCmd = &cobra.Command{
	Use:   "gui [script]",
	Short: "Play a console script in a window",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.GUIOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.CuesPath, _ = cmd.Flags().GetString("cues")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.HTTPAddr, _ = cmd.Flags().GetString("http-addr")
		opts.Width, _ = cmd.Flags().GetInt("width")
		opts.Height, _ = cmd.Flags().GetInt("height")
		if len(args) > 0 {
			opts.ScriptPath = args[0]
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		cmd.SilenceUsage = true
		return cli.RunGUI(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)

	guiCmd.Flags().String("http-addr", "", "Serve the console API, event stream and /metrics on this address")
	guiCmd.Flags().Int("width", 960, "Window width")
	guiCmd.Flags().Int("height", 540, "Window height")
}
