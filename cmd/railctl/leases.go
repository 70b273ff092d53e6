package main

import (
	"fmt"
	"time"

	"railspace_backend/internal/assets"
	"railspace_backend/internal/events"
	"railspace_backend/internal/leases"
	"railspace_backend/internal/scheduler"
	"railspace_backend/platform/db"
	"railspace_backend/platform/validator"

	"github.com/spf13/cobra"
)

func leasesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leases",
		Short: "Lease maintenance tasks",
	}
	cmd.AddCommand(leasesExpireCmd(e))
	return cmd
}

func leasesExpireCmd(e *env) *cobra.Command {
	var (
		asOf    string
		enqueue bool
	)

	cmd := &cobra.Command{
		Use:   "expire",
		Short: "Expire ended leases and activate leases whose start date arrived",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(time.DateOnly, asOf)
				if err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
				now = parsed
			}

			if enqueue {
				client, err := scheduler.NewClient(e.cfg)
				if err != nil {
					return err
				}
				defer func() { _ = client.Close() }()

				var pinned time.Time
				if asOf != "" {
					pinned = now
				}
				id, err := client.EnqueueLeaseExpiry(ctx, pinned)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s task %s\n", scheduler.TaskExpireLeases, id)
				return nil
			}

			if err := requireDatabase(e); err != nil {
				return err
			}
			pool, err := db.NewPool(ctx, e.cfg)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			bus := events.NewInMemoryBus(e.log)
			val := validator.New()
			assetsModule, err := assets.NewModule(pool, bus, val, e.cfg, e.log)
			if err != nil {
				return err
			}
			svc := leases.NewModule(pool, assetsModule.Service(), bus, val, e.log).Service()

			result, err := svc.ExpireDue(ctx, now)
			bus.Wait()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "activated %d, expired %d\n", result.Activated, result.Expired)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "run the sweep as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "queue the sweep for the scheduler worker instead of running it here")
	return cmd
}
