package transport

import (
	"time"

	"github.com/google/uuid"
)

// SubmitApplicationRequest is the body of POST /applications.
type SubmitApplicationRequest struct {
	AssetID             string   `json:"assetId" validate:"required,max=64"`
	Name                string   `json:"name" validate:"required,min=2,max=200"`
	Email               string   `json:"email" validate:"required,email,max=254"`
	Phone               string   `json:"phone" validate:"required,min=10,max=32"`
	ProposedUse         string   `json:"proposedUse" validate:"required,min=10,max=2000"`
	LeaseDurationMonths int      `json:"leaseDurationMonths" validate:"required,min=1,max=360"`
	LeaseType           string   `json:"leaseType" validate:"required,oneof=Short-term Long-term Seasonal"`
	LeaseStartDate      string   `json:"leaseStartDate" validate:"required,isodate"`
	InterestedInBidding bool     `json:"interestedInBidding"`
	MaxBidAmount        *float64 `json:"maxBidAmount" validate:"omitempty,gt=0"`
	AutoBidEnabled      bool     `json:"autoBidEnabled"`
	BidIncrement        *float64 `json:"bidIncrement" validate:"omitempty,gt=0"`
	CreditScore         *int     `json:"creditScore" validate:"omitempty,min=300,max=900"`
	BusinessHistory     *string  `json:"businessHistory" validate:"omitempty,max=2000"`
}

// ReviewApplicationRequest is the body of POST /admin/applications/:id/review.
type ReviewApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=Approved Rejected"`
	Note     string `json:"note" validate:"omitempty,max=2000"`
}

// ListApplicationsRequest filters the admin application list.
type ListApplicationsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=Pending Approved Rejected"`
}

// RiskAssessment is the stored model verdict on an application.
type RiskAssessment struct {
	RiskScore int    `json:"riskScore"`
	Decision  string `json:"decision"`
	Reasoning string `json:"reasoning"`
}

// ApplicationResponse is the JSON shape of an application.
type ApplicationResponse struct {
	ID                  uuid.UUID       `json:"id"`
	AssetID             string          `json:"assetId"`
	AssetName           string          `json:"assetName"`
	AssetType           string          `json:"assetType"`
	ApplicantName       string          `json:"applicantName"`
	ApplicantEmail      string          `json:"applicantEmail"`
	ApplicantPhone      string          `json:"applicantPhone"`
	ProposedUse         string          `json:"proposedUse"`
	LeaseDurationMonths int             `json:"leaseDurationMonths"`
	LeaseType           string          `json:"leaseType"`
	LeaseStartDate      string          `json:"leaseStartDate"`
	InterestedInBidding bool            `json:"interestedInBidding"`
	MaxBidAmount        *float64        `json:"maxBidAmount"`
	AutoBidEnabled      bool            `json:"autoBidEnabled"`
	BidIncrement        *float64        `json:"bidIncrement"`
	CreditScore         *int            `json:"creditScore,omitempty"`
	BusinessHistory     *string         `json:"businessHistory,omitempty"`
	LeaseValue          float64         `json:"leaseValue"`
	Status              string          `json:"status"`
	Risk                *RiskAssessment `json:"risk,omitempty"`
	ReviewNote          *string         `json:"reviewNote,omitempty"`
	SubmittedDate       string          `json:"submittedDate"`
	SubmittedAt         time.Time       `json:"submittedAt"`
	ReviewedAt          *time.Time      `json:"reviewedAt,omitempty"`
	LeaseID             *uuid.UUID      `json:"leaseId,omitempty"`
}

// ApplicationListResponse wraps application lists as {"data": [...]}.
type ApplicationListResponse struct {
	Data []ApplicationResponse `json:"data"`
}
