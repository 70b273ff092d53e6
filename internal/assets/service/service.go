package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"railspace_backend/internal/assets/domain"
	"railspace_backend/internal/assets/repository"
	"railspace_backend/internal/assets/transport"
	"railspace_backend/internal/events"
	"railspace_backend/platform/apperr"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/sanitize"
)

const (
	msgLoadFailed       = "Failed to load assets from database"
	msgSaveFailed       = "Failed to save asset to database"
	msgStoreTimeout     = "asset store timed out"
	msgStoreUnavailable = "database not configured"
	msgInvalidWindow    = "availability.from must not be after availability.to"

	upstreamAssetStore = "asset_store"
)

// Service provides the asset listing pipeline and admin management.
type Service struct {
	reader   repository.Reader
	writer   repository.Writer
	eventBus events.Bus
	timeout  time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new asset service. writer may be nil, in which case every
// mutation fails with "database not configured".
func New(reader repository.Reader, writer repository.Writer, eventBus events.Bus, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		reader:   reader,
		writer:   writer,
		eventBus: eventBus,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}
}

// List fetches one snapshot, normalizes it and applies the filter chain.
// A failed or timed out fetch is returned as an error; no substitute data is served.
func (s *Service) List(ctx context.Context, criteria domain.Criteria) ([]domain.Asset, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(snapshot, criteria), nil
}

// Snapshot returns every asset, normalized, without filtering.
func (s *Service) Snapshot(ctx context.Context) ([]domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.reader.ListRecords(ctx)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return domain.NormalizeAll(records), nil
}

// Get returns one asset.
func (s *Service) Get(ctx context.Context, id string) (domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.reader.GetRecord(ctx, id)
	if err != nil {
		return domain.Asset{}, s.storeError("get", err)
	}
	return domain.Normalize(record), nil
}

// Create lists a new asset.
func (s *Service) Create(ctx context.Context, req transport.CreateAssetRequest) (domain.Asset, error) {
	if s.writer == nil {
		return domain.Asset{}, apperr.Internal(msgStoreUnavailable)
	}

	params, err := s.paramsFromRequest(req)
	if err != nil {
		return domain.Asset{}, err
	}
	if params.ID == "" {
		params.ID = fmt.Sprintf("AS-%d", s.now().UnixMilli())
	}
	if !domain.IsKnownCategory(params.Category) {
		s.log.Warn("asset created with unlisted category", "id", params.ID, "category", params.Category)
	}

	record, err := s.writer.Create(ctx, params)
	if err != nil {
		return domain.Asset{}, s.storeError("create", err)
	}
	asset := domain.Normalize(record)

	s.log.Info("asset created", "id", asset.ID, "name", asset.Name)
	s.eventBus.Publish(ctx, events.AssetCreated{
		BaseEvent: events.NewBaseEvent(),
		AssetID:   asset.ID,
		Name:      asset.Name,
		Category:  asset.Category,
	})
	return asset, nil
}

// Replace overwrites an asset.
func (s *Service) Replace(ctx context.Context, id string, req transport.CreateAssetRequest) (domain.Asset, error) {
	if s.writer == nil {
		return domain.Asset{}, apperr.Internal(msgStoreUnavailable)
	}

	params, err := s.paramsFromRequest(req)
	if err != nil {
		return domain.Asset{}, err
	}

	record, err := s.writer.Replace(ctx, id, params)
	if err != nil {
		return domain.Asset{}, s.storeError("replace", err)
	}
	return s.updated(ctx, record), nil
}

// Patch updates the provided fields of an asset.
func (s *Service) Patch(ctx context.Context, id string, req transport.PatchAssetRequest) (domain.Asset, error) {
	if s.writer == nil {
		return domain.Asset{}, apperr.Internal(msgStoreUnavailable)
	}

	params := repository.PatchParams{
		Name:        trimmedPtr(req.Name),
		Category:    trimmedPtr(req.Type),
		Location:    trimmedPtr(req.Location),
		Size:        req.Size,
		ImageURL:    trimmedPtr(req.ImageURL),
		Status:      req.Status,
		DataAIHint:  trimmedPtr(req.DataAIHint),
		LeaseType:   trimmedPtr(req.LeaseType),
		GeoLocation: trimmedPtr(req.GeoLocation),
		Rent:        req.Rent,
	}
	if req.Amenities != nil {
		params.Amenities = sanitize.List(req.Amenities)
	}
	if req.Availability != nil {
		from, to, err := parseWindow(*req.Availability)
		if err != nil {
			return domain.Asset{}, err
		}
		params.AvailabilityFrom, params.AvailabilityTo = &from, &to
	}

	record, err := s.writer.Patch(ctx, id, params)
	if err != nil {
		return domain.Asset{}, s.storeError("patch", err)
	}
	return s.updated(ctx, record), nil
}

// ToggleStatus flips an asset between Available and Leased.
func (s *Service) ToggleStatus(ctx context.Context, id string) (domain.Asset, error) {
	if s.writer == nil {
		return domain.Asset{}, apperr.Internal(msgStoreUnavailable)
	}

	record, err := s.writer.ToggleStatus(ctx, id)
	if err != nil {
		return domain.Asset{}, s.storeError("toggle status", err)
	}
	return s.updated(ctx, record), nil
}

// SetStatus sets the status of an asset. Used when leases start and end.
func (s *Service) SetStatus(ctx context.Context, id string, status string) error {
	if s.writer == nil {
		return apperr.Internal(msgStoreUnavailable)
	}

	record, err := s.writer.SetStatus(ctx, id, status)
	if err != nil {
		return s.storeError("set status", err)
	}
	s.updated(ctx, record)
	return nil
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.writer == nil {
		return apperr.Internal(msgStoreUnavailable)
	}

	if err := s.writer.Delete(ctx, id); err != nil {
		return s.storeError("delete", err)
	}

	s.log.Info("asset deleted", "id", id)
	s.eventBus.Publish(ctx, events.AssetDeleted{BaseEvent: events.NewBaseEvent(), AssetID: id})
	return nil
}

// Seed upserts every given record into the store and returns how many were written.
func (s *Service) Seed(ctx context.Context, records []domain.Record) (int, error) {
	if s.writer == nil {
		return 0, apperr.Internal(msgStoreUnavailable)
	}

	for i, record := range records {
		params, err := paramsFromAsset(domain.Normalize(record))
		if err != nil {
			return i, err
		}
		if err := s.writer.Upsert(ctx, params); err != nil {
			return i, s.storeError("seed", err)
		}
	}
	return len(records), nil
}

func (s *Service) updated(ctx context.Context, record domain.Record) domain.Asset {
	asset := domain.Normalize(record)
	s.log.Info("asset updated", "id", asset.ID, "status", asset.Status)
	s.eventBus.Publish(ctx, events.AssetUpdated{
		BaseEvent: events.NewBaseEvent(),
		AssetID:   asset.ID,
		Status:    asset.Status,
	})
	return asset
}

// storeError passes typed errors through and turns everything else into a
// 500 that names the failure without leaking driver details.
func (s *Service) storeError(op string, err error) error {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return err
	}

	s.log.UpstreamFailure(upstreamAssetStore, op, err)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindInternal, msgStoreTimeout, err).WithOp(op)
	}
	if op == "list" || op == "get" {
		return apperr.Wrap(apperr.KindInternal, msgLoadFailed, err).WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, msgSaveFailed, err).WithOp(op)
}

func (s *Service) paramsFromRequest(req transport.CreateAssetRequest) (repository.AssetParams, error) {
	params := repository.AssetParams{
		ID:          strings.TrimSpace(req.ID),
		Name:        sanitize.Text(req.Name),
		Category:    strings.TrimSpace(req.Type),
		Location:    sanitize.Text(req.Location),
		Size:        req.Size,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Status:      req.Status,
		DataAIHint:  sanitize.Text(req.DataAIHint),
		LeaseType:   trimmedPtr(req.LeaseType),
		GeoLocation: trimmedPtr(req.GeoLocation),
		Rent:        req.Rent,
		Amenities:   sanitize.List(req.Amenities),
	}
	if params.Status == "" {
		params.Status = domain.StatusAvailable
	}
	if req.Availability != nil {
		from, to, err := parseWindow(*req.Availability)
		if err != nil {
			return repository.AssetParams{}, err
		}
		params.AvailabilityFrom, params.AvailabilityTo = &from, &to
	}
	return params, nil
}

func paramsFromAsset(a domain.Asset) (repository.AssetParams, error) {
	params := repository.AssetParams{
		ID:          a.ID,
		Name:        a.Name,
		Category:    a.Category,
		Location:    a.Location,
		Size:        a.Size,
		ImageURL:    a.ImageURL,
		Status:      a.Status,
		DataAIHint:  a.DataAIHint,
		LeaseType:   a.LeaseType,
		GeoLocation: a.GeoLocation,
		Rent:        a.Rent,
		Amenities:   a.Amenities,
	}
	if a.Availability != nil {
		from, to, ok := a.Availability.Bounds()
		if !ok {
			return repository.AssetParams{}, apperr.Validation(msgInvalidWindow)
		}
		params.AvailabilityFrom, params.AvailabilityTo = &from, &to
	}
	return params, nil
}

func parseWindow(req transport.AvailabilityRequest) (time.Time, time.Time, error) {
	from, okFrom := domain.ParseDate(req.From)
	to, okTo := domain.ParseDate(req.To)
	if !okFrom || !okTo || from.After(to) {
		return time.Time{}, time.Time{}, apperr.Validation(msgInvalidWindow)
	}
	return from, to, nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
