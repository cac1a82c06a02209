package main

import (
	"fmt"
	"os"

	"github.com/friendlens/friendlens/cmd/seed/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "friendlens-seed",
		Short: "Seeding tool for the FriendLens API",
		Long:  "CLI tool for creating the database schema and loading event data",
	}

	rootCmd.AddCommand(commands.NewSchemaCmd())
	rootCmd.AddCommand(commands.NewLoadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
