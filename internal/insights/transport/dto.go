package transport

// AssessRiskInput describes an applicant for risk scoring.
type AssessRiskInput struct {
	ApplicantData string  `json:"applicantData" validate:"required,max=4000"`
	AssetType     string  `json:"assetType" validate:"required,max=100"`
	LeaseValue    float64 `json:"leaseValue" validate:"gte=0"`
}

// AssessRiskOutput is the model verdict on an applicant.
type AssessRiskOutput struct {
	RiskScore int    `json:"riskScore" validate:"min=0,max=100"`
	Decision  string `json:"decision" validate:"required,oneof=Auto-Approve Manual-Review Reject"`
	Reasoning string `json:"reasoning" validate:"required"`
}

// VerifyDocumentInput is an identity document photo to check.
type VerifyDocumentInput struct {
	ImageDataURI string `json:"imageDataUri" validate:"required"`
	DocumentType string `json:"documentType" validate:"required,oneof=PAN Aadhaar 'GST Certificate'"`
}

// VerifyDocumentOutput is the verification outcome.
type VerifyDocumentOutput struct {
	IsVerified    bool   `json:"isVerified"`
	TrustScore    int    `json:"trustScore" validate:"min=0,max=100"`
	ExtractedData string `json:"extractedData"`
	Remarks       string `json:"remarks" validate:"required"`
}

// SuggestLeaseRateInput describes an asset to price.
type SuggestLeaseRateInput struct {
	AssetType      string  `json:"assetType" validate:"required,max=100"`
	Location       string  `json:"location" validate:"required,max=200"`
	Size           float64 `json:"size" validate:"gt=0"`
	HistoricalData string  `json:"historicalData" validate:"required,max=8000"`
	MarketTrends   string  `json:"marketTrends" validate:"required,max=8000"`
	AssetCondition string  `json:"assetCondition" validate:"required,max=200"`
}

// SuggestLeaseRateOutput is a monthly rate per square foot.
type SuggestLeaseRateOutput struct {
	SuggestedLeaseRate float64 `json:"suggestedLeaseRate" validate:"gte=0"`
	ConfidenceLevel    string  `json:"confidenceLevel" validate:"required,oneof=High Medium Low"`
	Rationale          string  `json:"rationale" validate:"required"`
}

// DetectEncroachmentInput is a site photo.
type DetectEncroachmentInput struct {
	ImageDataURI string `json:"imageDataUri" validate:"required"`
}

// DetectEncroachmentOutput reports what the photo shows.
type DetectEncroachmentOutput struct {
	HasEncroachment bool   `json:"hasEncroachment"`
	Details         string `json:"details" validate:"required"`
}

// EncroachmentReportInput is a citizen report. Location may be left empty
// when the photo carries GPS tags.
type EncroachmentReportInput struct {
	ImageDataURI string `json:"imageDataUri" validate:"required"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	Description  string `json:"description" validate:"required,max=4000"`
	IsAnonymous  bool   `json:"isAnonymous"`
}

// EncroachmentReportOutput is the triage result of a report.
type EncroachmentReportOutput struct {
	IsValidReport bool   `json:"isValidReport"`
	Assessment    string `json:"assessment" validate:"required"`
	RewardTier    string `json:"rewardTier" validate:"required,oneof=Gold Silver Bronze None"`
	Location      string `json:"location"`
}

// PredictMaintenanceInput carries recent sensor readings of a warehouse.
type PredictMaintenanceInput struct {
	WarehouseID string `json:"warehouseId" validate:"required,max=64"`
	SensorData  string `json:"sensorData" validate:"required,max=8000"`
}

// PredictMaintenanceOutput is the maintenance forecast.
type PredictMaintenanceOutput struct {
	MaintenanceRequired bool   `json:"maintenanceRequired"`
	Urgency             string `json:"urgency" validate:"required,oneof=Low Medium High None"`
	Recommendation      string `json:"recommendation" validate:"required"`
}

// HighRiskZonesInput summarizes the evidence for zone prediction.
type HighRiskZonesInput struct {
	HistoricalData    string `json:"historicalData" validate:"required,max=8000"`
	LandRecords       string `json:"landRecords" validate:"required,max=8000"`
	SatelliteAnalysis string `json:"satelliteAnalysis" validate:"required,max=8000"`
}

// RiskZone is one predicted zone.
type RiskZone struct {
	Location  string `json:"location" validate:"required"`
	RiskLevel string `json:"riskLevel" validate:"required,oneof=High Medium Low"`
	Reason    string `json:"reason" validate:"required"`
}

// HighRiskZonesOutput lists predicted zones.
type HighRiskZonesOutput struct {
	Zones []RiskZone `json:"zones" validate:"dive"`
}
