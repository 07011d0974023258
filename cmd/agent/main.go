package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/seqtools/edl-agent/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     "edl-agent",
	Short:   "Local agent for timeline storage and EDL export",
	Long:    "edl-agent stores timeline projects and exports them to Vegas and Samplitude EDL files,\neither through its local HTTP API or directly from the command line.",
	Version: config.Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
