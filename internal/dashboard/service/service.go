// Package service builds the admin dashboard from the other modules.
package service

import (
	"context"
	"math"

	assetdomain "railspace_backend/internal/assets/domain"
	"railspace_backend/internal/dashboard/transport"

	"golang.org/x/sync/errgroup"
)

// AssetSource returns the unfiltered asset snapshot.
type AssetSource interface {
	Snapshot(ctx context.Context) ([]assetdomain.Asset, error)
}

// LeaseStats reports lease totals.
type LeaseStats interface {
	LeaseSummary(ctx context.Context) (transport.LeaseSummary, error)
}

// ApplicationStats counts applications by status.
type ApplicationStats interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Service computes the dashboard.
type Service struct {
	assets       AssetSource
	leases       LeaseStats
	applications ApplicationStats
}

// New creates the dashboard service. leases and applications may be nil
// when no database is configured; their sections are then empty.
func New(assets AssetSource, leases LeaseStats, applications ApplicationStats) *Service {
	return &Service{assets: assets, leases: leases, applications: applications}
}

// Overview loads the three sections concurrently and fails if any fails.
func (s *Service) Overview(ctx context.Context) (transport.DashboardResponse, error) {
	resp := transport.DashboardResponse{
		Leases:       transport.LeaseSummary{ByStatus: map[string]int{}},
		Applications: transport.ApplicationSummary{ByStatus: map[string]int{}},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snapshot, err := s.assets.Snapshot(gctx)
		if err != nil {
			return err
		}
		resp.Assets = summarizeAssets(snapshot)
		return nil
	})

	if s.leases != nil {
		g.Go(func() error {
			summary, err := s.leases.LeaseSummary(gctx)
			if err != nil {
				return err
			}
			if summary.ByStatus == nil {
				summary.ByStatus = map[string]int{}
			}
			resp.Leases = summary
			return nil
		})
	}

	if s.applications != nil {
		g.Go(func() error {
			counts, err := s.applications.CountByStatus(gctx)
			if err != nil {
				return err
			}
			if counts == nil {
				counts = map[string]int{}
			}
			resp.Applications = transport.ApplicationSummary{ByStatus: counts, Pending: counts["Pending"]}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return transport.DashboardResponse{}, err
	}
	return resp, nil
}

func summarizeAssets(assets []assetdomain.Asset) transport.AssetSummary {
	summary := transport.AssetSummary{
		Total:       len(assets),
		ByStatus:    map[string]int{},
		ByCategory:  map[string]int{},
		Utilization: map[string]float64{},
	}

	leased := map[string]int{}
	for _, a := range assets {
		summary.ByStatus[a.Status]++
		summary.ByCategory[a.Category]++
		summary.TotalArea += a.Size
		if a.Status == assetdomain.StatusLeased {
			leased[a.Category]++
			summary.LeasedArea += a.Size
		}
	}
	for category, total := range summary.ByCategory {
		summary.Utilization[category] = math.Round(float64(leased[category])/float64(total)*1000) / 10
	}
	return summary
}
