package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"railspace_backend/internal/applications/repository"
	"railspace_backend/internal/applications/transport"
	"railspace_backend/internal/events"
	"railspace_backend/platform/apperr"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/phone"
	"railspace_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgInvalidPhone       = "invalid phone number"
	msgInvalidStartDate   = "invalid lease start date"
	msgAssetNotAvailable  = "asset is not available for lease"
	msgRiskNotConfigured  = "risk assessment is not configured"
	msgBidAmountRequired  = "maxBidAmount is required when bidding"
	msgBidIncrementNeeded = "bidIncrement is required when auto-bid is enabled"
)

// Applicant identifies who submits or lists applications.
type Applicant struct {
	UserID *uuid.UUID
	Email  string
}

// Service provides lease application workflows.
type Service struct {
	repo     repository.Repository
	assets   AssetCatalog
	leases   LeaseWriter
	risk     RiskAssessor
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new application service. risk may be nil.
func New(repo repository.Repository, assets AssetCatalog, leases LeaseWriter, risk RiskAssessor, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		assets:   assets,
		leases:   leases,
		risk:     risk,
		eventBus: eventBus,
		log:      log,
		now:      time.Now,
	}
}

// Submit files a new application for an available asset.
func (s *Service) Submit(ctx context.Context, applicant Applicant, req transport.SubmitApplicationRequest) (transport.ApplicationResponse, error) {
	phoneE164, err := phone.ParseE164(req.Phone)
	if err != nil {
		return transport.ApplicationResponse{}, apperr.Validation(msgInvalidPhone)
	}
	startDate, err := parseDate(req.LeaseStartDate)
	if err != nil {
		return transport.ApplicationResponse{}, apperr.Validation(msgInvalidStartDate)
	}
	if req.InterestedInBidding && req.MaxBidAmount == nil {
		return transport.ApplicationResponse{}, apperr.Validation(msgBidAmountRequired)
	}
	if req.InterestedInBidding && req.AutoBidEnabled && req.BidIncrement == nil {
		return transport.ApplicationResponse{}, apperr.Validation(msgBidIncrementNeeded)
	}

	asset, err := s.assets.Lookup(ctx, strings.TrimSpace(req.AssetID))
	if err != nil {
		return transport.ApplicationResponse{}, err
	}
	if !asset.Available {
		return transport.ApplicationResponse{}, apperr.Conflict(msgAssetNotAvailable)
	}

	app := repository.Application{
		ID:                  uuid.New(),
		AssetID:             asset.ID,
		AssetName:           asset.Name,
		AssetType:           asset.Category,
		ApplicantUserID:     applicant.UserID,
		ApplicantName:       sanitize.Text(req.Name),
		ApplicantEmail:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               phoneE164,
		ProposedUse:         sanitize.Text(req.ProposedUse),
		LeaseDurationMonths: req.LeaseDurationMonths,
		LeaseType:           req.LeaseType,
		LeaseStartDate:      startDate,
		InterestedInBidding: req.InterestedInBidding,
		CreditScore:         req.CreditScore,
		BusinessHistory:     sanitize.TextPtr(req.BusinessHistory),
		LeaseValue:          annualValue(asset.Rent),
		Status:              repository.StatusPending,
		SubmittedAt:         s.now().UTC(),
	}
	if req.InterestedInBidding {
		app.MaxBidAmount = req.MaxBidAmount
		app.AutoBidEnabled = req.AutoBidEnabled
		if req.AutoBidEnabled {
			app.BidIncrement = req.BidIncrement
		}
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return transport.ApplicationResponse{}, err
	}

	s.log.Info("application submitted", "id", created.ID, "assetId", created.AssetID)
	s.eventBus.Publish(ctx, events.ApplicationSubmitted{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  created.ID,
		AssetID:        created.AssetID,
		AssetName:      created.AssetName,
		ApplicantName:  created.ApplicantName,
		ApplicantEmail: created.ApplicantEmail,
	})
	return toResponse(created), nil
}

// Mine lists the applications filed by applicant.
func (s *Service) Mine(ctx context.Context, applicant Applicant) (transport.ApplicationListResponse, error) {
	if applicant.UserID == nil && applicant.Email == "" {
		return transport.ApplicationListResponse{Data: []transport.ApplicationResponse{}}, nil
	}
	apps, err := s.repo.List(ctx, repository.ListParams{UserID: applicant.UserID, Email: applicant.Email})
	if err != nil {
		return transport.ApplicationListResponse{}, err
	}
	return toListResponse(apps), nil
}

// List lists applications for admins.
func (s *Service) List(ctx context.Context, req transport.ListApplicationsRequest) (transport.ApplicationListResponse, error) {
	apps, err := s.repo.List(ctx, repository.ListParams{Status: req.Status})
	if err != nil {
		return transport.ApplicationListResponse{}, err
	}
	return toListResponse(apps), nil
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ApplicationResponse{}, err
	}
	return toResponse(app), nil
}

// CountByStatus counts applications per status.
func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

// Review decides a Pending application. Approval creates the lease and
// marks the asset leased; if the lease cannot be created the application
// goes back to Pending.
func (s *Service) Review(ctx context.Context, id uuid.UUID, req transport.ReviewApplicationRequest) (transport.ApplicationResponse, error) {
	note := sanitize.TextPtr(&req.Note)

	app, err := s.repo.Decide(ctx, id, req.Decision, note, s.now().UTC())
	if err != nil {
		return transport.ApplicationResponse{}, err
	}

	var leaseID *uuid.UUID
	if app.Status == repository.StatusApproved {
		created, err := s.leases.CreateFromApplication(ctx, LeaseRequest{
			ApplicationID:  app.ID,
			AssetID:        app.AssetID,
			AssetName:      app.AssetName,
			LeaseHolder:    app.ApplicantName,
			HolderEmail:    app.ApplicantEmail,
			MonthlyRevenue: app.LeaseValue / 12,
			StartDate:      app.LeaseStartDate,
			DurationMonths: app.LeaseDurationMonths,
		})
		if err != nil {
			if reopenErr := s.repo.Reopen(ctx, app.ID); reopenErr != nil {
				s.log.Error("failed to reopen application after lease failure", "id", app.ID, "error", reopenErr)
			}
			return transport.ApplicationResponse{}, err
		}
		leaseID = &created

		if err := s.assets.MarkLeased(ctx, app.AssetID); err != nil {
			s.log.Error("failed to mark asset leased", "assetId", app.AssetID, "leaseId", created, "error", err)
		}
	}

	s.log.Info("application reviewed", "id", app.ID, "decision", app.Status)
	s.eventBus.Publish(ctx, events.ApplicationReviewed{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		AssetID:        app.AssetID,
		AssetName:      app.AssetName,
		ApplicantName:  app.ApplicantName,
		ApplicantEmail: app.ApplicantEmail,
		Decision:       app.Status,
		Note:           derefString(app.ReviewNote),
		LeaseID:        leaseID,
	})

	resp := toResponse(app)
	resp.LeaseID = leaseID
	return resp, nil
}

// AssessRisk runs the risk model on an application and stores the verdict.
func (s *Service) AssessRisk(ctx context.Context, id uuid.UUID) (transport.ApplicationResponse, error) {
	if s.risk == nil {
		return transport.ApplicationResponse{}, apperr.Unavailable(msgRiskNotConfigured)
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ApplicationResponse{}, err
	}

	verdict, err := s.risk.AssessRisk(ctx, RiskInput{
		ApplicantData: applicantSummary(app),
		AssetType:     app.AssetType,
		LeaseValue:    app.LeaseValue,
	})
	if err != nil {
		return transport.ApplicationResponse{}, err
	}

	updated, err := s.repo.SaveRisk(ctx, id, repository.RiskResult{
		Score:     verdict.RiskScore,
		Decision:  verdict.Decision,
		Reasoning: verdict.Reasoning,
	})
	if err != nil {
		return transport.ApplicationResponse{}, err
	}
	return toResponse(updated), nil
}

func applicantSummary(app repository.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s, Email: %s.", app.ApplicantName, app.ApplicantEmail)
	if app.CreditScore != nil {
		fmt.Fprintf(&b, " Credit Score: %d.", *app.CreditScore)
	}
	if app.BusinessHistory != nil {
		fmt.Fprintf(&b, " Business History: %s.", *app.BusinessHistory)
	}
	fmt.Fprintf(&b, " Proposed use: %s. Lease: %s, %d months.", app.ProposedUse, app.LeaseType, app.LeaseDurationMonths)
	return b.String()
}

func annualValue(monthlyRent *float64) float64 {
	if monthlyRent == nil {
		return 0
	}
	return *monthlyRent * 12
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toResponse(a repository.Application) transport.ApplicationResponse {
	resp := transport.ApplicationResponse{
		ID:                  a.ID,
		AssetID:             a.AssetID,
		AssetName:           a.AssetName,
		AssetType:           a.AssetType,
		ApplicantName:       a.ApplicantName,
		ApplicantEmail:      a.ApplicantEmail,
		ApplicantPhone:      a.Phone,
		ProposedUse:         a.ProposedUse,
		LeaseDurationMonths: a.LeaseDurationMonths,
		LeaseType:           a.LeaseType,
		LeaseStartDate:      a.LeaseStartDate.Format(time.DateOnly),
		InterestedInBidding: a.InterestedInBidding,
		MaxBidAmount:        a.MaxBidAmount,
		AutoBidEnabled:      a.AutoBidEnabled,
		BidIncrement:        a.BidIncrement,
		CreditScore:         a.CreditScore,
		BusinessHistory:     a.BusinessHistory,
		LeaseValue:          a.LeaseValue,
		Status:              a.Status,
		ReviewNote:          a.ReviewNote,
		SubmittedDate:       a.SubmittedAt.Format(time.DateOnly),
		SubmittedAt:         a.SubmittedAt,
		ReviewedAt:          a.ReviewedAt,
	}
	if a.RiskScore != nil && a.RiskDecision != nil {
		resp.Risk = &transport.RiskAssessment{
			RiskScore: *a.RiskScore,
			Decision:  *a.RiskDecision,
			Reasoning: derefString(a.RiskReasoning),
		}
	}
	return resp
}

func toListResponse(apps []repository.Application) transport.ApplicationListResponse {
	out := make([]transport.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toResponse(a))
	}
	return transport.ApplicationListResponse{Data: out}
}
