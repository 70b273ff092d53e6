package adapters

import (
	"context"

	appsvc "railspace_backend/internal/applications/service"
	dashboardsvc "railspace_backend/internal/dashboard/service"
	dashboardtransport "railspace_backend/internal/dashboard/transport"
	leasesvc "railspace_backend/internal/leases/service"
)

// DashboardLeaseStats adapts the lease service to the dashboard.
type DashboardLeaseStats struct {
	leases *leasesvc.Service
}

// NewDashboardLeaseStats returns nil when leases is nil.
func NewDashboardLeaseStats(leases *leasesvc.Service) dashboardsvc.LeaseStats {
	if leases == nil {
		return nil
	}
	return &DashboardLeaseStats{leases: leases}
}

func (a *DashboardLeaseStats) LeaseSummary(ctx context.Context) (dashboardtransport.LeaseSummary, error) {
	summary, err := a.leases.Summary(ctx)
	if err != nil {
		return dashboardtransport.LeaseSummary{}, err
	}
	return dashboardtransport.LeaseSummary{
		ByStatus:              summary.ByStatus,
		ActiveMonthlyRevenue:  summary.ActiveMonthlyRevenue,
		PendingMonthlyRevenue: summary.PendingMonthlyRevenue,
	}, nil
}

// NewDashboardApplicationStats returns nil when applications is nil.
func NewDashboardApplicationStats(applications *appsvc.Service) dashboardsvc.ApplicationStats {
	if applications == nil {
		return nil
	}
	return applications
}

var _ dashboardsvc.LeaseStats = (*DashboardLeaseStats)(nil)
