package main

import (
	"os"

	"github.com/spf13/cobra"

	"gately/internal/interfaces/cli/migrate"
	"gately/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gately",
		Short: "Gately - event ticketing service",
		Long:  `Gately sells, issues, and checks in event tickets, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
