package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kestrel-host",
		Short: "Host process for the kestrel engine core",
		Long: `kestrel-host drives an engine core through the frame loop.

It loads the native core library (or an in-process core for development),
submits window commands, drains responses and events, and exposes a debug
HTTP surface with Prometheus metrics and a live traffic tap.

Configuration comes from KESTREL_* environment variables; flags override.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		runCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
