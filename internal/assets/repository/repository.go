// Package repository stores assets in PostgreSQL and serves the bundled
// fallback listings when no store is configured.
package repository

import (
	"context"
	"errors"
	"fmt"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	assetNotFoundMessage = "asset not found"
	assetExistsMessage   = "asset already exists"

	uniqueViolation = "23505"
)

// Repo implements Repository on a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new asset repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListRecords returns every asset row with its raw column names.
func (r *Repo) ListRecords(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT * FROM assets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan assets: %w", err)
	}

	records := make([]domain.Record, len(maps))
	for i, m := range maps {
		records[i] = m
	}
	return records, nil
}

// GetRecord returns one asset row.
func (r *Repo) GetRecord(ctx context.Context, id string) (domain.Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT * FROM assets WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return collectOne(rows, "get asset")
}

// Create inserts a new asset.
func (r *Repo) Create(ctx context.Context, params AssetParams) (domain.Record, error) {
	query := `
		INSERT INTO assets (
			id, name, type, location, size, image_url, status, data_ai_hint,
			lease_type, availability_from, availability_to, geo_location, rent, amenities
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING *`

	rows, err := r.pool.Query(ctx, query, params.args()...)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return collectOne(rows, "create asset")
}

// Replace overwrites every column of an existing asset.
func (r *Repo) Replace(ctx context.Context, id string, params AssetParams) (domain.Record, error) {
	query := `
		UPDATE assets
		SET name = $2,
			type = $3,
			location = $4,
			size = $5,
			image_url = $6,
			status = $7,
			data_ai_hint = $8,
			lease_type = $9,
			availability_from = $10,
			availability_to = $11,
			geo_location = $12,
			rent = $13,
			amenities = $14,
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	params.ID = id
	rows, err := r.pool.Query(ctx, query, params.args()...)
	if err != nil {
		return nil, fmt.Errorf("replace asset: %w", err)
	}
	return collectOne(rows, "replace asset")
}

// Patch updates the provided columns of an asset.
func (r *Repo) Patch(ctx context.Context, id string, params PatchParams) (domain.Record, error) {
	query := `
		UPDATE assets
		SET name = COALESCE($2, name),
			type = COALESCE($3, type),
			location = COALESCE($4, location),
			size = COALESCE($5, size),
			image_url = COALESCE($6, image_url),
			status = COALESCE($7, status),
			data_ai_hint = COALESCE($8, data_ai_hint),
			lease_type = COALESCE($9, lease_type),
			availability_from = COALESCE($10, availability_from),
			availability_to = COALESCE($11, availability_to),
			geo_location = COALESCE($12, geo_location),
			rent = COALESCE($13, rent),
			amenities = COALESCE($14, amenities),
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	rows, err := r.pool.Query(ctx, query,
		id, params.Name, params.Category, params.Location, params.Size, params.ImageURL,
		params.Status, params.DataAIHint, params.LeaseType, params.AvailabilityFrom,
		params.AvailabilityTo, params.GeoLocation, params.Rent, params.Amenities,
	)
	if err != nil {
		return nil, fmt.Errorf("patch asset: %w", err)
	}
	return collectOne(rows, "patch asset")
}

// SetStatus sets the status of an asset.
func (r *Repo) SetStatus(ctx context.Context, id string, status string) (domain.Record, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE assets SET status = $2, updated_at = now() WHERE id = $1 RETURNING *`,
		id, status,
	)
	if err != nil {
		return nil, fmt.Errorf("set asset status: %w", err)
	}
	return collectOne(rows, "set asset status")
}

// ToggleStatus flips an asset between Available and Leased.
func (r *Repo) ToggleStatus(ctx context.Context, id string) (domain.Record, error) {
	query := `
		UPDATE assets
		SET status = CASE WHEN status = 'Available' THEN 'Leased' ELSE 'Available' END,
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("toggle asset status: %w", err)
	}
	return collectOne(rows, "toggle asset status")
}

// Delete removes an asset.
func (r *Repo) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(assetNotFoundMessage)
	}
	return nil
}

// Upsert inserts an asset or overwrites the existing row with the same id.
func (r *Repo) Upsert(ctx context.Context, params AssetParams) error {
	query := `
		INSERT INTO assets (
			id, name, type, location, size, image_url, status, data_ai_hint,
			lease_type, availability_from, availability_to, geo_location, rent, amenities
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			type = EXCLUDED.type,
			location = EXCLUDED.location,
			size = EXCLUDED.size,
			image_url = EXCLUDED.image_url,
			status = EXCLUDED.status,
			data_ai_hint = EXCLUDED.data_ai_hint,
			lease_type = EXCLUDED.lease_type,
			availability_from = EXCLUDED.availability_from,
			availability_to = EXCLUDED.availability_to,
			geo_location = EXCLUDED.geo_location,
			rent = EXCLUDED.rent,
			amenities = EXCLUDED.amenities,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, params.args()...); err != nil {
		return fmt.Errorf("upsert asset: %w", err)
	}
	return nil
}

func (p AssetParams) args() []any {
	return []any{
		p.ID, p.Name, p.Category, p.Location, p.Size, p.ImageURL, p.Status, p.DataAIHint,
		p.LeaseType, p.AvailabilityFrom, p.AvailabilityTo, p.GeoLocation, p.Rent, p.Amenities,
	}
}

func collectOne(rows pgx.Rows, op string) (domain.Record, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(assetNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return nil, apperr.Conflict(assetExistsMessage)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
