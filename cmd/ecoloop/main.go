package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "ecoloop",
		Short:         "Circular-economy product lifecycle tracking and outcome prediction",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		migrateCommand(),
		seedCommand(),
		statsCommand(),
		trainCommand(),
		predictCommand(),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
