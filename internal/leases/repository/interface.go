package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lease statuses.
const (
	StatusPending = "Pending"
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Lease is a stored lease.
type Lease struct {
	ID               uuid.UUID
	AssetID          string
	AssetName        string
	ApplicationID    *uuid.UUID
	LeaseHolder      string
	LeaseHolderEmail string
	Status           string
	MonthlyRevenue   float64
	StartDate        time.Time
	EndDate          time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListParams filters lease lists. Empty fields are ignored.
type ListParams struct {
	Status      string
	HolderEmail string
}

// StatusSummary aggregates leases sharing a status.
type StatusSummary struct {
	Status         string
	Count          int
	MonthlyRevenue float64
}

// Reader reads leases.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lease, error)
	List(ctx context.Context, params ListParams) ([]Lease, error)
	// ListDue returns leases whose status should change on day: Active or
	// Pending leases that ended before it, and Pending leases starting on or before it.
	ListDue(ctx context.Context, day time.Time) ([]Lease, error)
	Summary(ctx context.Context) ([]StatusSummary, error)
}

// Writer mutates leases.
type Writer interface {
	Create(ctx context.Context, lease Lease) (Lease, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Repository is the full lease store.
type Repository interface {
	Reader
	Writer
}
