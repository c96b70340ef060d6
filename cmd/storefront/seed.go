package main

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-state/internal/catalog"
	"github.com/nikolayk812/storefront-state/internal/repository"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in catalog to PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			if databaseURL == "" {
				return fmt.Errorf("database url is empty: set DATABASE_URL or --database-url")
			}

			ctx := cmd.Context()

			pool, err := pgxpool.New(ctx, databaseURL)
			if err != nil {
				return fmt.Errorf("pgxpool.New: %w", err)
			}
			defer pool.Close()

			products := catalog.Default().Products()

			repo := repository.NewCatalog(pool, cfg.Currency)
			if err := repo.UpsertProducts(ctx, products); err != nil {
				return fmt.Errorf("repo.UpsertProducts: %w", err)
			}

			log.Info("catalog seeded", slog.Int("products", len(products)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(products))
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string, overrides DATABASE_URL")

	return cmd
}
