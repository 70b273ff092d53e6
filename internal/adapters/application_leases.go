package adapters

import (
	"context"

	appsvc "railspace_backend/internal/applications/service"
	leasesvc "railspace_backend/internal/leases/service"

	"github.com/google/uuid"
)

// ApplicationLeaseWriter adapts the lease service so approvals can start leases.
type ApplicationLeaseWriter struct {
	leases *leasesvc.Service
}

func NewApplicationLeaseWriter(leases *leasesvc.Service) *ApplicationLeaseWriter {
	return &ApplicationLeaseWriter{leases: leases}
}

func (w *ApplicationLeaseWriter) CreateFromApplication(ctx context.Context, req appsvc.LeaseRequest) (uuid.UUID, error) {
	lease, err := w.leases.CreateFromApplication(ctx, leasesvc.ApplicationLease{
		ApplicationID:  req.ApplicationID,
		AssetID:        req.AssetID,
		AssetName:      req.AssetName,
		LeaseHolder:    req.LeaseHolder,
		HolderEmail:    req.HolderEmail,
		MonthlyRevenue: req.MonthlyRevenue,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return lease.ID, nil
}

var _ appsvc.LeaseWriter = (*ApplicationLeaseWriter)(nil)
