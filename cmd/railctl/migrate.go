package main

import (
	"fmt"

	"railspace_backend/platform/db"

	"github.com/spf13/cobra"
)

func migrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := requireDatabase(e); err != nil {
					return err
				}
				if err := db.RunMigrations(cmd.Context(), e.cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := requireDatabase(e); err != nil {
					return err
				}
				return db.MigrationStatus(cmd.Context(), e.cfg, cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func requireDatabase(e *env) error {
	if !e.cfg.IsDatabaseConfigured() {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	return nil
}
