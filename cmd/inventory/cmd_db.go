package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/goldenhive/inventory/config"
	"github.com/goldenhive/inventory/database"
	"github.com/goldenhive/inventory/logger"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) (*gorm.DB, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

// inventory migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the products table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	},
}

// inventory seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalogue into an empty products table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		n, err := database.Seed(cmd.Context(), db, log)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Products table is not empty; nothing seeded.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products.\n", n)
		return nil
	},
}
