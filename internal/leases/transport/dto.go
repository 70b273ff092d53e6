package transport

import "github.com/google/uuid"

// ListLeasesRequest filters the admin lease list.
type ListLeasesRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=Pending Active Expired"`
}

// LeaseResponse is the JSON shape of a lease. Dates are YYYY-MM-DD.
type LeaseResponse struct {
	ID               uuid.UUID  `json:"id"`
	AssetID          string     `json:"assetId"`
	AssetName        string     `json:"assetName"`
	ApplicationID    *uuid.UUID `json:"applicationId,omitempty"`
	LeaseHolder      string     `json:"leaseHolder"`
	LeaseHolderEmail string     `json:"leaseHolderEmail"`
	Status           string     `json:"status"`
	MonthlyRevenue   float64    `json:"monthlyRevenue"`
	StartDate        string     `json:"startDate"`
	EndDate          string     `json:"endDate"`
}

// LeaseListResponse wraps lease lists as {"data": [...]}.
type LeaseListResponse struct {
	Data []LeaseResponse `json:"data"`
}

// ExpiryResult reports what one expiry sweep changed.
type ExpiryResult struct {
	Activated int `json:"activated"`
	Expired   int `json:"expired"`
}

// Summary aggregates leases for the dashboard.
type Summary struct {
	ByStatus              map[string]int `json:"byStatus"`
	ActiveMonthlyRevenue  float64        `json:"activeMonthlyRevenue"`
	PendingMonthlyRevenue float64        `json:"pendingMonthlyRevenue"`
}
