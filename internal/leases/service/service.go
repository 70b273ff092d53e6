package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"railspace_backend/internal/events"
	"railspace_backend/internal/leases/repository"
	"railspace_backend/internal/leases/transport"
	"railspace_backend/platform/apperr"
	"railspace_backend/platform/logger"

	"github.com/google/uuid"
)

const assetStatusAvailable = "Available"

// AssetStatusWriter releases an asset when its lease ends.
type AssetStatusWriter interface {
	SetStatus(ctx context.Context, assetID string, status string) error
}

// ApplicationLease is what an approved application turns into.
type ApplicationLease struct {
	ApplicationID  uuid.UUID
	AssetID        string
	AssetName      string
	LeaseHolder    string
	HolderEmail    string
	MonthlyRevenue float64
	StartDate      time.Time
	DurationMonths int
}

// Service provides lease lifecycle operations.
type Service struct {
	repo     repository.Repository
	assets   AssetStatusWriter
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new lease service.
func New(repo repository.Repository, assets AssetStatusWriter, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, assets: assets, eventBus: eventBus, log: log, now: time.Now}
}

// CreateFromApplication starts a lease for an approved application. The
// lease is Active when it starts today or earlier, Pending otherwise.
func (s *Service) CreateFromApplication(ctx context.Context, in ApplicationLease) (transport.LeaseResponse, error) {
	if in.DurationMonths <= 0 {
		return transport.LeaseResponse{}, apperr.Validation("lease duration must be positive")
	}

	start := dateOf(in.StartDate)
	status := repository.StatusPending
	if !start.After(dateOf(s.now())) {
		status = repository.StatusActive
	}

	applicationID := in.ApplicationID
	lease, err := s.repo.Create(ctx, repository.Lease{
		ID:               uuid.New(),
		AssetID:          in.AssetID,
		AssetName:        in.AssetName,
		ApplicationID:    &applicationID,
		LeaseHolder:      in.LeaseHolder,
		LeaseHolderEmail: strings.ToLower(strings.TrimSpace(in.HolderEmail)),
		Status:           status,
		MonthlyRevenue:   in.MonthlyRevenue,
		StartDate:        start,
		EndDate:          start.AddDate(0, in.DurationMonths, 0),
	})
	if err != nil {
		return transport.LeaseResponse{}, err
	}

	s.log.Info("lease created", "id", lease.ID, "assetId", lease.AssetID, "status", lease.Status)
	s.eventBus.Publish(ctx, events.LeaseCreated{
		BaseEvent:        events.NewBaseEvent(),
		LeaseID:          lease.ID,
		AssetID:          lease.AssetID,
		LeaseHolderEmail: lease.LeaseHolderEmail,
		StartDate:        lease.StartDate,
		EndDate:          lease.EndDate,
	})
	return toResponse(lease), nil
}

// Get returns one lease.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeaseResponse, error) {
	lease, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeaseResponse{}, err
	}
	return toResponse(lease), nil
}

// List lists leases with an optional status filter.
func (s *Service) List(ctx context.Context, req transport.ListLeasesRequest) (transport.LeaseListResponse, error) {
	leases, err := s.repo.List(ctx, repository.ListParams{Status: req.Status})
	if err != nil {
		return transport.LeaseListResponse{}, err
	}
	return toListResponse(leases), nil
}

// ListForHolder lists the leases held by email.
func (s *Service) ListForHolder(ctx context.Context, email string) (transport.LeaseListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return transport.LeaseListResponse{Data: []transport.LeaseResponse{}}, nil
	}
	leases, err := s.repo.List(ctx, repository.ListParams{HolderEmail: email})
	if err != nil {
		return transport.LeaseListResponse{}, err
	}
	return toListResponse(leases), nil
}

// Summary counts leases per status and sums monthly revenue.
func (s *Service) Summary(ctx context.Context) (transport.Summary, error) {
	rows, err := s.repo.Summary(ctx)
	if err != nil {
		return transport.Summary{}, err
	}

	out := transport.Summary{ByStatus: map[string]int{
		repository.StatusPending: 0,
		repository.StatusActive:  0,
		repository.StatusExpired: 0,
	}}
	for _, row := range rows {
		out.ByStatus[row.Status] = row.Count
		switch row.Status {
		case repository.StatusActive:
			out.ActiveMonthlyRevenue = row.MonthlyRevenue
		case repository.StatusPending:
			out.PendingMonthlyRevenue = row.MonthlyRevenue
		}
	}
	return out, nil
}

// ExpireDue moves leases along as of now: ended leases become Expired and
// release their asset, Pending leases whose start arrived become Active.
// Failures on single leases are logged and joined; the sweep continues.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (transport.ExpiryResult, error) {
	today := dateOf(now)
	due, err := s.repo.ListDue(ctx, today)
	if err != nil {
		return transport.ExpiryResult{}, err
	}

	var (
		result transport.ExpiryResult
		errs   []error
	)
	for _, lease := range due {
		if lease.EndDate.Before(today) {
			if err := s.expire(ctx, lease); err != nil {
				s.log.Error("lease expiry failed", "id", lease.ID, "error", err)
				errs = append(errs, err)
				continue
			}
			result.Expired++
			continue
		}

		if lease.Status == repository.StatusPending {
			if err := s.repo.UpdateStatus(ctx, lease.ID, repository.StatusActive); err != nil {
				s.log.Error("lease activation failed", "id", lease.ID, "error", err)
				errs = append(errs, err)
				continue
			}
			result.Activated++
		}
	}

	s.log.Info("lease sweep finished", "activated", result.Activated, "expired", result.Expired, "failed", len(errs))
	return result, errors.Join(errs...)
}

func (s *Service) expire(ctx context.Context, lease repository.Lease) error {
	if err := s.repo.UpdateStatus(ctx, lease.ID, repository.StatusExpired); err != nil {
		return err
	}
	if s.assets != nil {
		if err := s.assets.SetStatus(ctx, lease.AssetID, assetStatusAvailable); err != nil {
			return err
		}
	}

	s.eventBus.Publish(ctx, events.LeaseExpired{
		BaseEvent:        events.NewBaseEvent(),
		LeaseID:          lease.ID,
		AssetID:          lease.AssetID,
		AssetName:        lease.AssetName,
		LeaseHolder:      lease.LeaseHolder,
		LeaseHolderEmail: lease.LeaseHolderEmail,
		EndDate:          lease.EndDate,
	})
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toResponse(l repository.Lease) transport.LeaseResponse {
	return transport.LeaseResponse{
		ID:               l.ID,
		AssetID:          l.AssetID,
		AssetName:        l.AssetName,
		ApplicationID:    l.ApplicationID,
		LeaseHolder:      l.LeaseHolder,
		LeaseHolderEmail: l.LeaseHolderEmail,
		Status:           l.Status,
		MonthlyRevenue:   l.MonthlyRevenue,
		StartDate:        l.StartDate.Format(time.DateOnly),
		EndDate:          l.EndDate.Format(time.DateOnly),
	}
}

func toListResponse(leases []repository.Lease) transport.LeaseListResponse {
	out := make([]transport.LeaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, toResponse(l))
	}
	return transport.LeaseListResponse{Data: out}
}
