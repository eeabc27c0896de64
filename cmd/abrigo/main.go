package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abrigo-care/abrigo/internal/interfaces/cli/migrate"
	"github.com/abrigo-care/abrigo/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abrigo",
		Short: "Abrigo - care package subscription and billing service",
		Long:  `Abrigo serves the care platform's package catalog, subscription ledger and pricing engine.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
