package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/niche-research/internal/database"
	"github.com/rickgao/niche-research/internal/provider"
	"github.com/rickgao/niche-research/internal/store"
)

func seedCmd() *cobra.Command {
	var migrateOnly bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the catalog schema and load the reference catalog",
		Long: `seed connects to the configured PostgreSQL database, creates the catalog
tables if needed and replaces their contents with the reference catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Database.Postgres.Validate("database.postgres"); err != nil {
				return err
			}

			logger := newLogger(os.Stderr, cfg.Log)
			ctx, cancel := signalContext(logger)
			defer cancel()

			pool, err := database.Connect(ctx, cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.Migrate(ctx, pool); err != nil {
				return err
			}
			logger.Info("schema ready")
			if migrateOnly {
				return nil
			}

			catalog := provider.ReferenceCatalog("")
			if err := store.Seed(ctx, pool, catalog); err != nil {
				return err
			}
			logger.Info("catalog seeded",
				"products", len(catalog.Products),
				"companies", len(catalog.Companies),
				"trends", len(catalog.Trends),
				"alerts", len(catalog.Alerts),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateOnly, "migrate-only", false, "create the schema without loading data")
	return cmd
}
