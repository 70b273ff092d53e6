// Package service implements the model-backed insight capabilities. Every
// capability validates its input, asks the model for JSON matching a fixed
// schema and validates the answer before returning it.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"railspace_backend/internal/insights/transport"
	"railspace_backend/platform/ai/gemini"
	"railspace_backend/platform/apperr"
	"railspace_backend/platform/imagedata"
	"railspace_backend/platform/logger"
	"railspace_backend/platform/validator"
)

const (
	msgNotConfigured   = "AI insights are not configured"
	msgInvalidInput    = "validation failed"
	msgInvalidImage    = "imageDataUri must be a base64 image data URI"
	msgProviderFailed  = "model provider request failed"
	msgProviderTimeout = "model provider timed out"
	msgInvalidOutput   = "model returned an invalid response"
)

const systemPrompt = "You assist the land and asset management team of a national railway. " +
	"Answer only with JSON matching the response schema."

// Generator produces structured JSON from a prompt. *gemini.Client satisfies it.
type Generator interface {
	GenerateJSON(ctx context.Context, req gemini.Request, out any) error
}

// Service runs insight capabilities against a Generator.
type Service struct {
	gen Generator
	val *validator.Validator
	log *logger.Logger
}

// New creates the insights service. A nil gen makes every capability
// return an Unavailable error.
func New(gen Generator, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{gen: gen, val: val, log: log}
}

// Configured reports whether a model provider is available.
func (s *Service) Configured() bool {
	return s.gen != nil
}

// AssessRisk scores a lease applicant.
func (s *Service) AssessRisk(ctx context.Context, in transport.AssessRiskInput) (transport.AssessRiskOutput, error) {
	var out transport.AssessRiskOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Assess the risk of leasing a %s asset with an annual lease value of INR %.2f to this applicant.\n"+
				"Score 0 is very low risk and 100 very high. Recommend Auto-Approve, Manual-Review or Reject.\n\nApplicant: %s",
			in.AssetType, in.LeaseValue, in.ApplicantData),
		Schema: assessRiskSchema,
	}
	err := s.generate(ctx, "assessRisk", req, &out)
	return out, err
}

// VerifyDocument checks an identity or registration document photo.
func (s *Service) VerifyDocument(ctx context.Context, in transport.VerifyDocumentInput) (transport.VerifyDocumentOutput, error) {
	var out transport.VerifyDocumentOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	img, err := decodeImage(in.ImageDataURI)
	if err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Verify this %s document. Check formatting, official seals and signs of tampering, "+
				"extract the key fields and give a trust score from 0 to 100.", in.DocumentType),
		Images: imagePart(img),
		Schema: verifyDocumentSchema,
	}
	err = s.generate(ctx, "verifyDocument", req, &out)
	return out, err
}

// SuggestLeaseRate proposes a monthly rate per square foot.
func (s *Service) SuggestLeaseRate(ctx context.Context, in transport.SuggestLeaseRateInput) (transport.SuggestLeaseRateOutput, error) {
	var out transport.SuggestLeaseRateOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Suggest an optimal monthly lease rate per square foot in INR.\n"+
				"Asset type: %s\nLocation: %s\nSize: %.0f sq ft\nCondition: %s\n"+
				"Historical lease data: %s\nMarket trends: %s",
			in.AssetType, in.Location, in.Size, in.AssetCondition, in.HistoricalData, in.MarketTrends),
		Schema: suggestLeaseRateSchema,
	}
	err := s.generate(ctx, "suggestLeaseRate", req, &out)
	return out, err
}

// DetectEncroachment inspects a site photo for unauthorized structures.
func (s *Service) DetectEncroachment(ctx context.Context, in transport.DetectEncroachmentInput) (transport.DetectEncroachmentOutput, error) {
	var out transport.DetectEncroachmentOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	img, err := decodeImage(in.ImageDataURI)
	if err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: "Analyze this image of railway land for unauthorized structures, " +
			"vehicles or other encroachment and describe what you find.",
		Images: imagePart(img),
		Schema: detectEncroachmentSchema,
	}
	err = s.generate(ctx, "detectEncroachment", req, &out)
	return out, err
}

// ProcessEncroachmentReport triages a citizen report. An empty location is
// filled from the photo's GPS tags when present.
func (s *Service) ProcessEncroachmentReport(ctx context.Context, in transport.EncroachmentReportInput) (transport.EncroachmentReportOutput, error) {
	var out transport.EncroachmentReportOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	img, err := decodeImage(in.ImageDataURI)
	if err != nil {
		return out, err
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		if p, gpsErr := img.GPS(); gpsErr == nil {
			location = p.String()
		}
	}

	reporter := "a named citizen"
	if in.IsAnonymous {
		reporter = "an anonymous citizen"
	}
	where := location
	if where == "" {
		where = "unknown"
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Assess this encroachment report on railway land submitted by %s.\n"+
				"Location: %s\nDescription: %s\n"+
				"Decide whether it is a valid report and assign a reward tier: Gold for clear large encroachments, "+
				"Silver for moderate ones, Bronze for minor ones, None if invalid.",
			reporter, where, in.Description),
		Images: imagePart(img),
		Schema: encroachmentReportSchema,
	}
	if err := s.generate(ctx, "processEncroachmentReport", req, &out); err != nil {
		return out, err
	}
	out.Location = location
	return out, nil
}

// PredictMaintenance forecasts maintenance needs from sensor readings.
func (s *Service) PredictMaintenance(ctx context.Context, in transport.PredictMaintenanceInput) (transport.PredictMaintenanceOutput, error) {
	var out transport.PredictMaintenanceOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Predict whether warehouse %s needs maintenance from these sensor readings "+
				"and give the urgency and a recommendation.\n\nSensor data: %s",
			in.WarehouseID, in.SensorData),
		Schema: predictMaintenanceSchema,
	}
	err := s.generate(ctx, "predictMaintenance", req, &out)
	return out, err
}

// PredictHighRiskZones lists zones likely to see encroachment.
func (s *Service) PredictHighRiskZones(ctx context.Context, in transport.HighRiskZonesInput) (transport.HighRiskZonesOutput, error) {
	var out transport.HighRiskZonesOutput
	if err := s.prepare(in); err != nil {
		return out, err
	}
	req := gemini.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(
			"Predict railway land zones at high risk of encroachment.\n"+
				"Historical incidents: %s\nLand records: %s\nSatellite analysis: %s",
			in.HistoricalData, in.LandRecords, in.SatelliteAnalysis),
		Schema: highRiskZonesSchema,
	}
	if err := s.generate(ctx, "predictHighRiskZones", req, &out); err != nil {
		return out, err
	}
	if out.Zones == nil {
		out.Zones = []transport.RiskZone{}
	}
	return out, nil
}

func (s *Service) prepare(in any) error {
	if s.gen == nil {
		return apperr.Unavailable(msgNotConfigured)
	}
	if err := s.val.Struct(in); err != nil {
		return apperr.Validation(msgInvalidInput).WithDetails(validator.Messages(err))
	}
	return nil
}

func (s *Service) generate(ctx context.Context, op string, req gemini.Request, out any) error {
	if err := s.gen.GenerateJSON(ctx, req, out); err != nil {
		s.log.UpstreamFailure("model", op, err)
		if errors.Is(err, context.DeadlineExceeded) {
			return apperr.Wrap(apperr.KindInternal, msgProviderTimeout, err).WithOp(op)
		}
		return apperr.Wrap(apperr.KindInternal, msgProviderFailed, err).WithOp(op)
	}
	if err := s.val.Struct(out); err != nil {
		s.log.Warn("model response failed validation", "operation", op, "error", err)
		return apperr.Wrap(apperr.KindInternal, msgInvalidOutput, err).WithOp(op)
	}
	return nil
}

func decodeImage(uri string) (imagedata.Image, error) {
	img, err := imagedata.ParseDataURI(uri)
	if err != nil {
		if errors.Is(err, imagedata.ErrTooLarge) {
			return imagedata.Image{}, apperr.Validation(err.Error())
		}
		return imagedata.Image{}, apperr.Validation(msgInvalidImage)
	}
	return img, nil
}

func imagePart(img imagedata.Image) []gemini.Image {
	return []gemini.Image{{MIMEType: img.MIMEType, Data: img.Data}}
}
