package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trailerboard/internal/config"
)

// Build info - injected via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "trailerboard",
	Short: "Trailer production order board",
	Long:  `Trailerboard tracks trailer orders from scheduling through shipment and derives each order's status on read.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Fail fast on a broken config file before any command runs.
		if _, err := config.Load(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
