package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/hackterm/internal/cli"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [script]",
	Short: "Describe a console script",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		cmd.SilenceUsage = true
		return cli.Inspect(cmd.OutOrStdout(), path, raw)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
