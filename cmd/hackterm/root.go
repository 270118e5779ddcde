package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hackterm",
	Short: "hackterm is an animated hacker console",
	Long:  `hackterm types scripted messages out character by character and shows live variable inspectors next to them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "hackterm.yaml", "Console configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("cues", "cues.yaml", "Commands to run for script cues (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
}
