package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"reminders/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reminders",
		Short:         "Reminders API server and sweep job",
		Long:          `Reminders stores reminders behind a small JSON API and emails each one once it falls due.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSweepCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
