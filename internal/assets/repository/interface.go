package repository

import (
	"context"
	"time"

	"railspace_backend/internal/assets/domain"
)

// AssetParams carries every stored column of an asset for create and replace.
type AssetParams struct {
	ID               string
	Name             string
	Category         string
	Location         string
	Size             float64
	ImageURL         string
	Status           string
	DataAIHint       string
	LeaseType        *string
	AvailabilityFrom *time.Time
	AvailabilityTo   *time.Time
	GeoLocation      *string
	Rent             *float64
	Amenities        []string
}

// PatchParams updates only the non-nil fields.
type PatchParams struct {
	Name             *string
	Category         *string
	Location         *string
	Size             *float64
	ImageURL         *string
	Status           *string
	DataAIHint       *string
	LeaseType        *string
	AvailabilityFrom *time.Time
	AvailabilityTo   *time.Time
	GeoLocation      *string
	Rent             *float64
	Amenities        []string
}

// Reader returns raw asset rows for the normalizer.
type Reader interface {
	ListRecords(ctx context.Context) ([]domain.Record, error)
	GetRecord(ctx context.Context, id string) (domain.Record, error)
}

// Writer mutates the asset store.
type Writer interface {
	Create(ctx context.Context, params AssetParams) (domain.Record, error)
	Replace(ctx context.Context, id string, params AssetParams) (domain.Record, error)
	Patch(ctx context.Context, id string, params PatchParams) (domain.Record, error)
	SetStatus(ctx context.Context, id string, status string) (domain.Record, error)
	ToggleStatus(ctx context.Context, id string) (domain.Record, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, params AssetParams) error
}

// Repository is the full asset store.
type Repository interface {
	Reader
	Writer
}
