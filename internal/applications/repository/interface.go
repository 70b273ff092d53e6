package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Application statuses.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Application is a stored lease application.
type Application struct {
	ID                  uuid.UUID
	AssetID             string
	AssetName           string
	AssetType           string
	ApplicantUserID     *uuid.UUID
	ApplicantName       string
	ApplicantEmail      string
	Phone               string
	ProposedUse         string
	LeaseDurationMonths int
	LeaseType           string
	LeaseStartDate      time.Time
	InterestedInBidding bool
	MaxBidAmount        *float64
	AutoBidEnabled      bool
	BidIncrement        *float64
	CreditScore         *int
	BusinessHistory     *string
	LeaseValue          float64
	Status              string
	RiskScore           *int
	RiskDecision        *string
	RiskReasoning       *string
	ReviewNote          *string
	SubmittedAt         time.Time
	ReviewedAt          *time.Time
}

// ListParams filters application lists. Empty fields are ignored; UserID and
// Email together match either.
type ListParams struct {
	Status string
	UserID *uuid.UUID
	Email  string
}

// RiskResult is a stored risk assessment.
type RiskResult struct {
	Score     int
	Decision  string
	Reasoning string
}

// Reader reads applications.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	List(ctx context.Context, params ListParams) ([]Application, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Writer mutates applications.
type Writer interface {
	Create(ctx context.Context, app Application) (Application, error)
	// Decide moves a Pending application to status. It fails with a conflict
	// when the application was already decided.
	Decide(ctx context.Context, id uuid.UUID, status string, note *string, at time.Time) (Application, error)
	// Reopen puts a decided application back to Pending.
	Reopen(ctx context.Context, id uuid.UUID) error
	SaveRisk(ctx context.Context, id uuid.UUID, risk RiskResult) (Application, error)
}

// Repository is the full application store.
type Repository interface {
	Reader
	Writer
}
