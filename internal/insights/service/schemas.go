package service

import "google.golang.org/genai"

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func enum(desc string, values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc, Enum: values}
}

func boolean(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeBoolean, Description: desc}
}

func score(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeInteger,
		Description: desc,
		Minimum:     genai.Ptr(0.0),
		Maximum:     genai.Ptr(100.0),
	}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

var (
	assessRiskSchema = object(map[string]*genai.Schema{
		"riskScore": score("Risk from 0 (very low) to 100 (very high)."),
		"decision":  enum("Recommended action.", "Auto-Approve", "Manual-Review", "Reject"),
		"reasoning": str("Short explanation of the score and decision."),
	}, "riskScore", "decision", "reasoning")

	verifyDocumentSchema = object(map[string]*genai.Schema{
		"isVerified":    boolean("Whether the document checks out."),
		"trustScore":    score("Confidence in the verification, 0 to 100."),
		"extractedData": str("Key fields read from the document."),
		"remarks":       str("Reasons for the outcome."),
	}, "isVerified", "trustScore", "extractedData", "remarks")

	suggestLeaseRateSchema = object(map[string]*genai.Schema{
		"suggestedLeaseRate": {Type: genai.TypeNumber, Description: "Rate per square foot per month.", Minimum: genai.Ptr(0.0)},
		"confidenceLevel":    enum("Confidence in the rate.", "High", "Medium", "Low"),
		"rationale":          str("Factors behind the rate."),
	}, "suggestedLeaseRate", "confidenceLevel", "rationale")

	detectEncroachmentSchema = object(map[string]*genai.Schema{
		"hasEncroachment": boolean("Whether unauthorized encroachment is visible."),
		"details":         str("Summary of the findings."),
	}, "hasEncroachment", "details")

	encroachmentReportSchema = object(map[string]*genai.Schema{
		"isValidReport": boolean("Whether the report looks like real encroachment."),
		"assessment":    str("Summary of the assessment."),
		"rewardTier":    enum("Reward tier if verified.", "Gold", "Silver", "Bronze", "None"),
	}, "isValidReport", "assessment", "rewardTier")

	predictMaintenanceSchema = object(map[string]*genai.Schema{
		"maintenanceRequired": boolean("Whether maintenance is needed."),
		"urgency":             enum("Urgency of the maintenance.", "Low", "Medium", "High", "None"),
		"recommendation":      str("Recommended action."),
	}, "maintenanceRequired", "urgency", "recommendation")

	highRiskZonesSchema = object(map[string]*genai.Schema{
		"zones": {
			Type: genai.TypeArray,
			Items: object(map[string]*genai.Schema{
				"location":  str("Location of the zone."),
				"riskLevel": enum("Predicted risk level.", "High", "Medium", "Low"),
				"reason":    str("Why the zone is at risk."),
			}, "location", "riskLevel", "reason"),
		},
	}, "zones")
)
