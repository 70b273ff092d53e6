package main

import (
	"fmt"

	"railspace_backend/internal/assets/repository"
	"railspace_backend/internal/assets/service"
	"railspace_backend/internal/events"
	"railspace_backend/platform/db"

	"github.com/spf13/cobra"
)

func seedCmd(e *env) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the bundled fallback assets into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDatabase(e); err != nil {
				return err
			}
			ctx := cmd.Context()

			if migrate {
				if err := db.RunMigrations(ctx, e.cfg); err != nil {
					return err
				}
			}

			pool, err := db.NewPool(ctx, e.cfg)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			records, err := repository.FallbackRecords()
			if err != nil {
				return err
			}

			repo := repository.New(pool)
			bus := events.NewInMemoryBus(e.log)
			svc := service.New(repo, repo, bus, e.cfg.GetAssetStoreTimeout(), e.log)

			n, err := svc.Seed(ctx, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d assets\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")
	return cmd
}
