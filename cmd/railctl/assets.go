package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/internal/assets/repository"
	"railspace_backend/internal/assets/service"
	"railspace_backend/internal/assets/transport"
	"railspace_backend/internal/events"
	"railspace_backend/platform/db"
	"railspace_backend/platform/logger"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func assetsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Inspect asset listings",
	}
	cmd.AddCommand(assetsListCmd(e))
	return cmd
}

func assetsListCmd(e *env) *cobra.Command {
	var (
		q        transport.ListAssetsQuery
		asJSON   bool
		fallback bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets with the same filters as GET /api/v1/assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var reader repository.Reader
			if fallback || !e.cfg.IsDatabaseConfigured() {
				fb, err := repository.NewFallback()
				if err != nil {
					return err
				}
				reader = fb
			} else {
				pool, err := db.NewPool(ctx, e.cfg)
				if err != nil {
					return fmt.Errorf("connect: %w", err)
				}
				defer pool.Close()
				reader = repository.New(pool)
			}

			return listAssets(ctx, reader, e.cfg.GetAssetStoreTimeout(), e.log, q, asJSON, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.City, "city", "", "location contains (case-insensitive)")
	f.StringVar(&q.Type, "type", "", "exact category, or all")
	f.StringVar(&q.Q, "q", "", "keyword in name or location")
	f.StringVar(&q.Status, "status", "", "Available, Leased or all")
	f.StringVar(&q.MinSize, "min-size", "", "minimum size in sq ft")
	f.StringVar(&q.MaxSize, "max-size", "", "maximum size in sq ft")
	f.StringVar(&q.MinRent, "min-rent", "", "minimum monthly rent")
	f.StringVar(&q.MaxRent, "max-rent", "", "maximum monthly rent")
	f.StringVar(&q.NearLat, "near-lat", "", "latitude of the search center")
	f.StringVar(&q.NearLng, "near-lng", "", "longitude of the search center")
	f.StringVar(&q.MaxDistance, "max-distance", "", "search radius in km")
	f.StringVar(&q.From, "from", "", "availability window start (YYYY-MM-DD)")
	f.StringVar(&q.To, "to", "", "availability window end (YYYY-MM-DD)")
	f.BoolVar(&asJSON, "json", false, "print the response body as JSON")
	f.BoolVar(&fallback, "fallback", false, "read the bundled fallback data instead of the store")
	return cmd
}

func listAssets(ctx context.Context, reader repository.Reader, timeout time.Duration, log *logger.Logger, q transport.ListAssetsQuery, asJSON bool, w io.Writer) error {
	svc := service.New(reader, nil, events.NewInMemoryBus(log), timeout, log)

	list, err := svc.List(ctx, q.Criteria())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(transport.AssetListResponse{Data: list})
	}
	return renderAssets(w, list)
}

func renderAssets(w io.Writer, list []domain.Asset) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Type", "Location", "Size", "Rent", "Status")
	for _, a := range list {
		rent := "-"
		if a.Rent != nil {
			rent = strconv.FormatFloat(*a.Rent, 'f', -1, 64)
		}
		if err := table.Append([]string{
			a.ID,
			a.Name,
			a.Category,
			a.Location,
			strconv.FormatFloat(a.Size, 'f', -1, 64),
			rent,
			a.Status,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d assets\n", len(list))
	return err
}
