package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"railspace_backend/internal/applications/repository"
	"railspace_backend/internal/applications/transport"
	"railspace_backend/internal/events"
	"railspace_backend/platform/apperr"
	"railspace_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	apps     map[uuid.UUID]repository.Application
	reopened []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: map[uuid.UUID]repository.Application{}}
}

func (r *fakeRepo) Create(_ context.Context, a repository.Application) (repository.Application, error) {
	r.apps[a.ID] = a
	return a, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return repository.Application{}, apperr.NotFound("application not found")
	}
	return a, nil
}

func (r *fakeRepo) List(context.Context, repository.ListParams) ([]repository.Application, error) {
	out := make([]repository.Application, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepo) CountByStatus(context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, a := range r.apps {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *fakeRepo) Decide(_ context.Context, id uuid.UUID, status string, note *string, at time.Time) (repository.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return repository.Application{}, apperr.NotFound("application not found")
	}
	if a.Status != repository.StatusPending {
		return repository.Application{}, apperr.Conflict("application has already been reviewed")
	}
	a.Status, a.ReviewNote, a.ReviewedAt = status, note, &at
	r.apps[id] = a
	return a, nil
}

func (r *fakeRepo) Reopen(_ context.Context, id uuid.UUID) error {
	a := r.apps[id]
	a.Status, a.ReviewNote, a.ReviewedAt = repository.StatusPending, nil, nil
	r.apps[id] = a
	r.reopened = append(r.reopened, id)
	return nil
}

func (r *fakeRepo) SaveRisk(_ context.Context, id uuid.UUID, risk repository.RiskResult) (repository.Application, error) {
	a := r.apps[id]
	a.RiskScore, a.RiskDecision, a.RiskReasoning = &risk.Score, &risk.Decision, &risk.Reasoning
	r.apps[id] = a
	return a, nil
}

type fakeAssets struct {
	info   AssetInfo
	leased []string
}

func (a *fakeAssets) Lookup(_ context.Context, id string) (AssetInfo, error) {
	if id != a.info.ID {
		return AssetInfo{}, apperr.NotFound("asset not found")
	}
	return a.info, nil
}

func (a *fakeAssets) MarkLeased(_ context.Context, id string) error {
	a.leased = append(a.leased, id)
	return nil
}

type fakeLeases struct {
	requests []LeaseRequest
	err      error
}

func (l *fakeLeases) CreateFromApplication(_ context.Context, req LeaseRequest) (uuid.UUID, error) {
	if l.err != nil {
		return uuid.Nil, l.err
	}
	l.requests = append(l.requests, req)
	return uuid.New(), nil
}

type fakeRisk struct {
	got RiskInput
}

func (f *fakeRisk) AssessRisk(_ context.Context, in RiskInput) (RiskVerdict, error) {
	f.got = in
	return RiskVerdict{RiskScore: 22, Decision: "Auto-Approve", Reasoning: "long history"}, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func rent(v float64) *float64 { return &v }

func validRequest() transport.SubmitApplicationRequest {
	return transport.SubmitApplicationRequest{
		AssetID:             "AS-2",
		Name:                "Asha Rao",
		Email:               "Asha@Example.com",
		Phone:               "98765 43210",
		ProposedUse:         "Cold storage for produce",
		LeaseDurationMonths: 24,
		LeaseType:           "Long-term",
		LeaseStartDate:      "2025-04-01",
		AutoBidEnabled:      true,
		BidIncrement:        rent(500),
	}
}

type fixture struct {
	svc    *Service
	repo   *fakeRepo
	assets *fakeAssets
	leases *fakeLeases
	risk   *fakeRisk
	bus    *recordingBus
}

func newFixture(available bool) fixture {
	f := fixture{
		repo:   newFakeRepo(),
		assets: &fakeAssets{info: AssetInfo{ID: "AS-2", Name: "Warehouse Space", Category: "Industrial", Rent: rent(120000), Available: available}},
		leases: &fakeLeases{},
		risk:   &fakeRisk{},
		bus:    &recordingBus{},
	}
	f.svc = New(f.repo, f.assets, f.leases, f.risk, f.bus, logger.Discard())
	return f
}

func TestSubmit(t *testing.T) {
	f := newFixture(true)
	userID := uuid.New()

	got, err := f.svc.Submit(context.Background(), Applicant{UserID: &userID}, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ApplicantPhone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", got.ApplicantPhone)
	}
	if got.ApplicantEmail != "asha@example.com" {
		t.Fatalf("expected lower-cased email, got %q", got.ApplicantEmail)
	}
	if got.LeaseValue != 1440000 {
		t.Fatalf("expected annual value 1440000, got %v", got.LeaseValue)
	}
	if got.Status != repository.StatusPending || got.AssetName != "Warehouse Space" {
		t.Fatalf("unexpected application %+v", got)
	}
	if got.AutoBidEnabled || got.BidIncrement != nil {
		t.Fatalf("bid settings must be dropped when not bidding, got %+v", got)
	}
	if len(f.bus.events) != 1 || f.bus.events[0].EventName() != "applications.submitted" {
		t.Fatalf("expected applications.submitted, got %v", f.bus.events)
	}
}

func TestSubmitRejects(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		mutate    func(*transport.SubmitApplicationRequest)
		kind      apperr.Kind
	}{
		{name: "bad phone", available: true, mutate: func(r *transport.SubmitApplicationRequest) { r.Phone = "12345" }, kind: apperr.KindValidation},
		{name: "leased asset", available: false, mutate: func(*transport.SubmitApplicationRequest) {}, kind: apperr.KindConflict},
		{name: "unknown asset", available: true, mutate: func(r *transport.SubmitApplicationRequest) { r.AssetID = "AS-9" }, kind: apperr.KindNotFound},
		{name: "bid without amount", available: true, mutate: func(r *transport.SubmitApplicationRequest) { r.InterestedInBidding = true }, kind: apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.available)
			req := validRequest()
			tt.mutate(&req)

			_, err := f.svc.Submit(context.Background(), Applicant{}, req)
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("expected kind %v, got %v", tt.kind, err)
			}
			if len(f.repo.apps) != 0 {
				t.Fatalf("nothing should be stored")
			}
		})
	}
}

func submitted(t *testing.T, f fixture) transport.ApplicationResponse {
	t.Helper()
	app, err := f.svc.Submit(context.Background(), Applicant{}, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return app
}

func TestReviewApproveCreatesLease(t *testing.T) {
	f := newFixture(true)
	app := submitted(t, f)

	got, err := f.svc.Review(context.Background(), app.ID, transport.ReviewApplicationRequest{Decision: repository.StatusApproved, Note: "ok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != repository.StatusApproved || got.LeaseID == nil {
		t.Fatalf("expected approved with lease, got %+v", got)
	}
	if len(f.leases.requests) != 1 || f.leases.requests[0].MonthlyRevenue != 120000 || f.leases.requests[0].DurationMonths != 24 {
		t.Fatalf("unexpected lease request %+v", f.leases.requests)
	}
	if len(f.assets.leased) != 1 || f.assets.leased[0] != "AS-2" {
		t.Fatalf("expected asset marked leased, got %v", f.assets.leased)
	}

	_, err = f.svc.Review(context.Background(), app.ID, transport.ReviewApplicationRequest{Decision: repository.StatusRejected})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on second review, got %v", err)
	}
}

func TestReviewRejectLeavesAssetAlone(t *testing.T) {
	f := newFixture(true)
	app := submitted(t, f)

	got, err := f.svc.Review(context.Background(), app.ID, transport.ReviewApplicationRequest{Decision: repository.StatusRejected})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != repository.StatusRejected || got.LeaseID != nil || got.ReviewNote != nil {
		t.Fatalf("unexpected response %+v", got)
	}
	if len(f.leases.requests) != 0 || len(f.assets.leased) != 0 {
		t.Fatalf("rejection must not create leases")
	}
}

func TestReviewReopensWhenLeaseFails(t *testing.T) {
	f := newFixture(true)
	f.leases.err = errors.New("lease store down")
	app := submitted(t, f)

	if _, err := f.svc.Review(context.Background(), app.ID, transport.ReviewApplicationRequest{Decision: repository.StatusApproved}); err == nil {
		t.Fatalf("expected error")
	}
	if f.repo.apps[app.ID].Status != repository.StatusPending || len(f.repo.reopened) != 1 {
		t.Fatalf("expected application back to Pending")
	}
}

func TestAssessRisk(t *testing.T) {
	f := newFixture(true)
	app := submitted(t, f)

	got, err := f.svc.AssessRisk(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Risk == nil || got.Risk.RiskScore != 22 || got.Risk.Decision != "Auto-Approve" {
		t.Fatalf("unexpected risk %+v", got.Risk)
	}
	if f.risk.got.AssetType != "Industrial" || f.risk.got.LeaseValue != 1440000 {
		t.Fatalf("unexpected risk input %+v", f.risk.got)
	}
}

func TestAssessRiskUnavailable(t *testing.T) {
	svc := New(newFakeRepo(), &fakeAssets{}, &fakeLeases{}, nil, &recordingBus{}, logger.Discard())
	if _, err := svc.AssessRisk(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestMineWithoutIdentityIsEmpty(t *testing.T) {
	f := newFixture(true)
	submitted(t, f)

	got, err := f.svc.Mine(context.Background(), Applicant{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data == nil || len(got.Data) != 0 {
		t.Fatalf("expected empty list, got %+v", got.Data)
	}
}
