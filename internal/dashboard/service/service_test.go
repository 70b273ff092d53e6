package service

import (
	"context"
	"errors"
	"testing"

	assetdomain "railspace_backend/internal/assets/domain"
	"railspace_backend/internal/dashboard/transport"
)

type stubAssets struct {
	assets []assetdomain.Asset
	err    error
}

func (s stubAssets) Snapshot(context.Context) ([]assetdomain.Asset, error) { return s.assets, s.err }

type stubLeases struct {
	summary transport.LeaseSummary
	err     error
}

func (s stubLeases) LeaseSummary(context.Context) (transport.LeaseSummary, error) {
	return s.summary, s.err
}

type stubApplications map[string]int

func (s stubApplications) CountByStatus(context.Context) (map[string]int, error) { return s, nil }

func sampleAssets() []assetdomain.Asset {
	return []assetdomain.Asset{
		{ID: "AS-1", Category: "Retail", Status: assetdomain.StatusLeased, Size: 100},
		{ID: "AS-2", Category: "Retail", Status: assetdomain.StatusAvailable, Size: 300},
		{ID: "AS-3", Category: "Retail", Status: assetdomain.StatusAvailable, Size: 200},
		{ID: "AS-4", Category: "Land", Status: assetdomain.StatusLeased, Size: 1000},
	}
}

func TestOverview(t *testing.T) {
	svc := New(
		stubAssets{assets: sampleAssets()},
		stubLeases{summary: transport.LeaseSummary{ByStatus: map[string]int{"Active": 2}, ActiveMonthlyRevenue: 60000}},
		stubApplications{"Pending": 3, "Approved": 1},
	)

	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Assets.Total != 4 || got.Assets.ByStatus["Leased"] != 2 || got.Assets.ByCategory["Retail"] != 3 {
		t.Fatalf("unexpected asset summary %+v", got.Assets)
	}
	if got.Assets.Utilization["Retail"] != 33.3 || got.Assets.Utilization["Land"] != 100 {
		t.Fatalf("unexpected utilization %v", got.Assets.Utilization)
	}
	if got.Assets.TotalArea != 1600 || got.Assets.LeasedArea != 1100 {
		t.Fatalf("unexpected areas %v / %v", got.Assets.TotalArea, got.Assets.LeasedArea)
	}
	if got.Leases.ActiveMonthlyRevenue != 60000 {
		t.Fatalf("unexpected lease summary %+v", got.Leases)
	}
	if got.Applications.Pending != 3 {
		t.Fatalf("expected 3 pending applications, got %d", got.Applications.Pending)
	}
}

func TestOverviewWithoutDatabaseSections(t *testing.T) {
	got, err := New(stubAssets{assets: sampleAssets()}, nil, nil).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Leases.ByStatus == nil || got.Applications.ByStatus == nil {
		t.Fatalf("expected empty maps for missing sections")
	}
}

func TestOverviewFailsWhenAnySectionFails(t *testing.T) {
	boom := errors.New("boom")
	svc := New(stubAssets{assets: sampleAssets()}, stubLeases{err: boom}, stubApplications{})

	if _, err := svc.Overview(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected lease error, got %v", err)
	}
}
