package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/hackterm/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Play a console script in the terminal",
	Long:  `Plays a YAML script on the console, mirrored to stdout. Without a script the built-in tutorial is played.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Out: cmd.OutOrStdout()}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.CuesPath, _ = cmd.Flags().GetString("cues")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Instant, _ = cmd.Flags().GetBool("instant")
		opts.Hold, _ = cmd.Flags().GetBool("hold")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
		opts.HTTPAddr, _ = cmd.Flags().GetString("http-addr")
		if len(args) > 0 {
			opts.ScriptPath = args[0]
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		cmd.SilenceUsage = true
		return cli.Execute(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("instant", false, "Disable per-character delays")
	runCmd.Flags().Bool("hold", false, "Keep running after the script ends (with --http-addr)")
	runCmd.Flags().String("redis-addr", "", "Redis address used to enforce a single console across processes")
	runCmd.Flags().String("http-addr", "", "Serve the console API, event stream and /metrics on this address")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
