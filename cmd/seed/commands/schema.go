package commands

import (
	"context"
	"fmt"

	"github.com/friendlens/friendlens/internal/config"
	"github.com/friendlens/friendlens/internal/store"
	"github.com/spf13/cobra"
)

// NewSchemaCmd creates the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Drop and recreate the database schema",
		Long:  "Drops the people, activities and events tables and recreates them empty. All existing data is lost.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := store.Open(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := db.CreateSchema(context.Background()); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			fmt.Println("Schema created.")
			return nil
		},
	}
}
