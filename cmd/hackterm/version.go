package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hackterm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hackterm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hackterm version %s\n", strings.TrimSpace(hackterm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
