// Package repository stores leases in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"railspace_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leaseNotFoundMessage = "lease not found"

const leaseColumns = `id, asset_id, asset_name, application_id, lease_holder, lease_holder_email,
	status, monthly_revenue, start_date, end_date, created_at, updated_at`

// Repo implements Repository on a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lease repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a lease.
func (r *Repo) Create(ctx context.Context, lease Lease) (Lease, error) {
	query := `
		INSERT INTO leases (
			id, asset_id, asset_name, application_id, lease_holder, lease_holder_email,
			status, monthly_revenue, start_date, end_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaseColumns

	created, err := scanLease(r.pool.QueryRow(ctx, query,
		lease.ID, lease.AssetID, lease.AssetName, lease.ApplicationID, lease.LeaseHolder,
		lease.LeaseHolderEmail, lease.Status, lease.MonthlyRevenue, lease.StartDate, lease.EndDate,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Lease{}, apperr.Conflict("lease already exists for application")
		}
		return Lease{}, fmt.Errorf("create lease: %w", err)
	}
	return created, nil
}

// GetByID retrieves a lease.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`

	lease, err := scanLease(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lease{}, apperr.NotFound(leaseNotFoundMessage)
		}
		return Lease{}, fmt.Errorf("get lease: %w", err)
	}
	return lease, nil
}

// List lists leases, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lease, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.HolderEmail != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lower(lease_holder_email) = lower($%d)", argIdx))
		args = append(args, params.HolderEmail)
	}

	query := `SELECT ` + leaseColumns + ` FROM leases WHERE ` +
		strings.Join(whereClauses, " AND ") + ` ORDER BY start_date DESC, created_at DESC`

	return r.query(ctx, "list leases", query, args...)
}

// ListDue returns leases whose status should change on day.
func (r *Repo) ListDue(ctx context.Context, day time.Time) ([]Lease, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM leases
		WHERE (status IN ('Active', 'Pending') AND end_date < $1)
			OR (status = 'Pending' AND start_date <= $1)
		ORDER BY end_date`

	return r.query(ctx, "list due leases", query, day)
}

// Summary counts leases and sums monthly revenue per status.
func (r *Repo) Summary(ctx context.Context) ([]StatusSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*), COALESCE(sum(monthly_revenue), 0)
		FROM leases
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("summarize leases: %w", err)
	}
	defer rows.Close()

	var out []StatusSummary
	for rows.Next() {
		var s StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.MonthlyRevenue); err != nil {
			return nil, fmt.Errorf("scan lease summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease summary: %w", err)
	}
	return out, nil
}

// UpdateStatus sets the status of a lease.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE leases SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update lease status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leaseNotFoundMessage)
	}
	return nil
}

func (r *Repo) query(ctx context.Context, op, query string, args ...interface{}) ([]Lease, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	leases := make([]Lease, 0)
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		leases = append(leases, lease)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return leases, nil
}

// leaseRowScanner is satisfied by pgx.Rows and pgx.Row.
type leaseRowScanner interface {
	Scan(dest ...any) error
}

// scanLease reads a row in leaseColumns order.
func scanLease(s leaseRowScanner) (Lease, error) {
	var lease Lease
	err := s.Scan(
		&lease.ID,
		&lease.AssetID,
		&lease.AssetName,
		&lease.ApplicationID,
		&lease.LeaseHolder,
		&lease.LeaseHolderEmail,
		&lease.Status,
		&lease.MonthlyRevenue,
		&lease.StartDate,
		&lease.EndDate,
		&lease.CreatedAt,
		&lease.UpdatedAt,
	)
	return lease, err
}
