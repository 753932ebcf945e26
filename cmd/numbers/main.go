package main

import (
	"os"

	"github.com/spf13/cobra"

	"numbers/internal/interfaces/cli/migrate"
	"numbers/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numbers",
		Short: "Numbers - telephony number lifecycle service",
		Long:  `Numbers manages the platform's telephony number pool, ownership lifecycle, and assignment audit trail.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
