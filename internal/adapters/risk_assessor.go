package adapters

import (
	"context"

	appsvc "railspace_backend/internal/applications/service"
	insightsvc "railspace_backend/internal/insights/service"
	insighttransport "railspace_backend/internal/insights/transport"
)

// RiskAssessor adapts the insights service to the applications risk port.
type RiskAssessor struct {
	insights *insightsvc.Service
}

// NewRiskAssessor returns nil when the model provider is not configured so
// the applications module reports risk assessment as unavailable.
func NewRiskAssessor(insights *insightsvc.Service) appsvc.RiskAssessor {
	if insights == nil || !insights.Configured() {
		return nil
	}
	return &RiskAssessor{insights: insights}
}

func (a *RiskAssessor) AssessRisk(ctx context.Context, in appsvc.RiskInput) (appsvc.RiskVerdict, error) {
	out, err := a.insights.AssessRisk(ctx, insighttransport.AssessRiskInput{
		ApplicantData: in.ApplicantData,
		AssetType:     in.AssetType,
		LeaseValue:    in.LeaseValue,
	})
	if err != nil {
		return appsvc.RiskVerdict{}, err
	}
	return appsvc.RiskVerdict{
		RiskScore: out.RiskScore,
		Decision:  out.Decision,
		Reasoning: out.Reasoning,
	}, nil
}

var _ appsvc.RiskAssessor = (*RiskAssessor)(nil)
