// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"railspace_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// NewBaseEvent creates a base event stamped with the current time.
func NewBaseEvent() BaseEvent {
	return events.NewBaseEvent()
}

// =============================================================================
// Asset Events
// =============================================================================

// AssetCreated is published after an admin lists a new asset.
type AssetCreated struct {
	BaseEvent
	AssetID  string `json:"assetId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (e AssetCreated) EventName() string { return "assets.created" }

// AssetUpdated is published after any admin change to an asset, including status toggles.
type AssetUpdated struct {
	BaseEvent
	AssetID string `json:"assetId"`
	Status  string `json:"status"`
}

func (e AssetUpdated) EventName() string { return "assets.updated" }

// AssetDeleted is published after an asset is removed.
type AssetDeleted struct {
	BaseEvent
	AssetID string `json:"assetId"`
}

func (e AssetDeleted) EventName() string { return "assets.deleted" }

// =============================================================================
// Application Events
// =============================================================================

// ApplicationSubmitted is published when an applicant files a lease application.
type ApplicationSubmitted struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	AssetID        string    `json:"assetId"`
	AssetName      string    `json:"assetName"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
}

func (e ApplicationSubmitted) EventName() string { return "applications.submitted" }

// ApplicationReviewed is published when an admin approves or rejects an application.
type ApplicationReviewed struct {
	BaseEvent
	ApplicationID  uuid.UUID  `json:"applicationId"`
	AssetID        string     `json:"assetId"`
	AssetName      string     `json:"assetName"`
	ApplicantName  string     `json:"applicantName"`
	ApplicantEmail string     `json:"applicantEmail"`
	Decision       string     `json:"decision"`
	Note           string     `json:"note,omitempty"`
	LeaseID        *uuid.UUID `json:"leaseId,omitempty"`
}

func (e ApplicationReviewed) EventName() string { return "applications.reviewed" }

// =============================================================================
// Lease Events
// =============================================================================

// LeaseCreated is published when an approved application becomes a lease.
type LeaseCreated struct {
	BaseEvent
	LeaseID          uuid.UUID `json:"leaseId"`
	AssetID          string    `json:"assetId"`
	LeaseHolderEmail string    `json:"leaseHolderEmail"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
}

func (e LeaseCreated) EventName() string { return "leases.created" }

// LeaseExpired is published by the expiry sweep for each lease that ended.
type LeaseExpired struct {
	BaseEvent
	LeaseID          uuid.UUID `json:"leaseId"`
	AssetID          string    `json:"assetId"`
	AssetName        string    `json:"assetName"`
	LeaseHolder      string    `json:"leaseHolder"`
	LeaseHolderEmail string    `json:"leaseHolderEmail"`
	EndDate          time.Time `json:"endDate"`
}

func (e LeaseExpired) EventName() string { return "leases.expired" }
