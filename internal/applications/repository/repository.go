// Package repository stores lease applications in PostgreSQL.
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
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationNotFoundMessage = "application not found"
	applicationDecidedMessage  = "application has already been reviewed"
)

const applicationColumns = `id, asset_id, asset_name, asset_type, applicant_user_id, applicant_name,
	applicant_email, phone, proposed_use, lease_duration_months, lease_type, lease_start_date,
	interested_in_bidding, max_bid_amount, auto_bid_enabled, bid_increment, credit_score,
	business_history, lease_value, status, risk_score, risk_decision, risk_reasoning,
	review_note, submitted_at, reviewed_at`

// Repo implements Repository on a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new application repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts an application.
func (r *Repo) Create(ctx context.Context, a Application) (Application, error) {
	query := `
		INSERT INTO lease_applications (
			id, asset_id, asset_name, asset_type, applicant_user_id, applicant_name,
			applicant_email, phone, proposed_use, lease_duration_months, lease_type, lease_start_date,
			interested_in_bidding, max_bid_amount, auto_bid_enabled, bid_increment, credit_score,
			business_history, lease_value, status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING ` + applicationColumns

	created, err := scanApplication(r.pool.QueryRow(ctx, query,
		a.ID, a.AssetID, a.AssetName, a.AssetType, a.ApplicantUserID, a.ApplicantName,
		a.ApplicantEmail, a.Phone, a.ProposedUse, a.LeaseDurationMonths, a.LeaseType, a.LeaseStartDate,
		a.InterestedInBidding, a.MaxBidAmount, a.AutoBidEnabled, a.BidIncrement, a.CreditScore,
		a.BusinessHistory, a.LeaseValue, a.Status, a.SubmittedAt,
	))
	if err != nil {
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	return created, nil
}

// GetByID retrieves an application.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM lease_applications WHERE id = $1`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, apperr.NotFound(applicationNotFoundMessage)
		}
		return Application{}, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// List lists applications, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Application, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	var owner []string
	if params.UserID != nil {
		owner = append(owner, fmt.Sprintf("applicant_user_id = $%d", argIdx))
		args = append(args, *params.UserID)
		argIdx++
	}
	if params.Email != "" {
		owner = append(owner, fmt.Sprintf("lower(applicant_email) = lower($%d)", argIdx))
		args = append(args, params.Email)
	}
	if len(owner) > 0 {
		whereClauses = append(whereClauses, "("+strings.Join(owner, " OR ")+")")
	}

	query := `SELECT ` + applicationColumns + ` FROM lease_applications WHERE ` +
		strings.Join(whereClauses, " AND ") + ` ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}

// CountByStatus counts applications per status.
func (r *Repo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM lease_applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{StatusPending: 0, StatusApproved: 0, StatusRejected: 0}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan application count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application counts: %w", err)
	}
	return counts, nil
}

// Decide moves a Pending application to status.
func (r *Repo) Decide(ctx context.Context, id uuid.UUID, status string, note *string, at time.Time) (Application, error) {
	query := `
		UPDATE lease_applications
		SET status = $2, review_note = $3, reviewed_at = $4
		WHERE id = $1 AND status = 'Pending'
		RETURNING ` + applicationColumns

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, status, note, at))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Application{}, fmt.Errorf("decide application: %w", err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return Application{}, getErr
	}
	return Application{}, apperr.Conflict(applicationDecidedMessage)
}

// Reopen puts a decided application back to Pending.
func (r *Repo) Reopen(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE lease_applications
		SET status = 'Pending', review_note = NULL, reviewed_at = NULL
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reopen application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(applicationNotFoundMessage)
	}
	return nil
}

// SaveRisk stores a risk assessment.
func (r *Repo) SaveRisk(ctx context.Context, id uuid.UUID, risk RiskResult) (Application, error) {
	query := `
		UPDATE lease_applications
		SET risk_score = $2, risk_decision = $3, risk_reasoning = $4
		WHERE id = $1
		RETURNING ` + applicationColumns

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, risk.Score, risk.Decision, risk.Reasoning))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, apperr.NotFound(applicationNotFoundMessage)
		}
		return Application{}, fmt.Errorf("save risk assessment: %w", err)
	}
	return app, nil
}

// applicationRowScanner is satisfied by pgx.Rows and pgx.Row.
type applicationRowScanner interface {
	Scan(dest ...any) error
}

// scanApplication reads a row in applicationColumns order.
func scanApplication(s applicationRowScanner) (Application, error) {
	var a Application
	err := s.Scan(
		&a.ID,
		&a.AssetID,
		&a.AssetName,
		&a.AssetType,
		&a.ApplicantUserID,
		&a.ApplicantName,
		&a.ApplicantEmail,
		&a.Phone,
		&a.ProposedUse,
		&a.LeaseDurationMonths,
		&a.LeaseType,
		&a.LeaseStartDate,
		&a.InterestedInBidding,
		&a.MaxBidAmount,
		&a.AutoBidEnabled,
		&a.BidIncrement,
		&a.CreditScore,
		&a.BusinessHistory,
		&a.LeaseValue,
		&a.Status,
		&a.RiskScore,
		&a.RiskDecision,
		&a.RiskReasoning,
		&a.ReviewNote,
		&a.SubmittedAt,
		&a.ReviewedAt,
	)
	return a, err
}
