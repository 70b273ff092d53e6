package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AssetInfo is the slice of an asset an application needs.
type AssetInfo struct {
	ID        string
	Name      string
	Category  string
	Rent      *float64
	Available bool
}

// AssetCatalog looks assets up and marks them leased.
type AssetCatalog interface {
	Lookup(ctx context.Context, assetID string) (AssetInfo, error)
	MarkLeased(ctx context.Context, assetID string) error
}

// LeaseRequest is what an approved application asks the lease module to create.
type LeaseRequest struct {
	ApplicationID  uuid.UUID
	AssetID        string
	AssetName      string
	LeaseHolder    string
	HolderEmail    string
	MonthlyRevenue float64
	StartDate      time.Time
	DurationMonths int
}

// LeaseWriter creates the lease for an approved application.
type LeaseWriter interface {
	CreateFromApplication(ctx context.Context, req LeaseRequest) (uuid.UUID, error)
}

// RiskInput is what the risk model sees.
type RiskInput struct {
	ApplicantData string
	AssetType     string
	LeaseValue    float64
}

// RiskVerdict is what the risk model returns.
type RiskVerdict struct {
	RiskScore int
	Decision  string
	Reasoning string
}

// RiskAssessor scores an application.
type RiskAssessor interface {
	AssessRisk(ctx context.Context, in RiskInput) (RiskVerdict, error)
}
