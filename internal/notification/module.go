// Package notification sends emails in response to domain events.
// Domain modules publish events and never talk to the mail server directly.
package notification

import (
	"context"
	"time"

	"railspace_backend/internal/email"
	"railspace_backend/internal/events"
	"railspace_backend/platform/logger"
)

// Module handles notification events.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes to the events that notify applicants and lease holders.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ApplicationSubmitted{}.EventName(), m)
	bus.Subscribe(events.ApplicationReviewed{}.EventName(), m)
	bus.Subscribe(events.LeaseExpired{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ApplicationSubmitted:
		return m.handleApplicationSubmitted(ctx, e)
	case events.ApplicationReviewed:
		return m.handleApplicationReviewed(ctx, e)
	case events.LeaseExpired:
		return m.handleLeaseExpired(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleApplicationSubmitted(ctx context.Context, e events.ApplicationSubmitted) error {
	err := m.sender.SendApplicationReceivedEmail(ctx, e.ApplicantEmail, email.ApplicationReceived{
		ApplicantName: e.ApplicantName,
		AssetName:     e.AssetName,
		ApplicationID: e.ApplicationID.String(),
	})
	if err != nil {
		m.log.Error("failed to send application received email",
			"applicationId", e.ApplicationID,
			"email", e.ApplicantEmail,
			"error", err,
		)
		return err
	}
	m.log.Info("application received email sent", "applicationId", e.ApplicationID, "email", e.ApplicantEmail)
	return nil
}

func (m *Module) handleApplicationReviewed(ctx context.Context, e events.ApplicationReviewed) error {
	msg := email.ApplicationDecision{
		ApplicantName: e.ApplicantName,
		AssetName:     e.AssetName,
		ApplicationID: e.ApplicationID.String(),
		Approved:      e.Decision == "Approved",
		Note:          e.Note,
	}
	if e.LeaseID != nil {
		msg.LeaseID = e.LeaseID.String()
	}

	if err := m.sender.SendApplicationDecisionEmail(ctx, e.ApplicantEmail, msg); err != nil {
		m.log.Error("failed to send application decision email",
			"applicationId", e.ApplicationID,
			"decision", e.Decision,
			"error", err,
		)
		return err
	}
	m.log.Info("application decision email sent", "applicationId", e.ApplicationID, "decision", e.Decision)
	return nil
}

func (m *Module) handleLeaseExpired(ctx context.Context, e events.LeaseExpired) error {
	if e.LeaseHolderEmail == "" {
		return nil
	}
	err := m.sender.SendLeaseExpiredEmail(ctx, e.LeaseHolderEmail, email.LeaseExpired{
		LeaseHolder: e.LeaseHolder,
		AssetName:   e.AssetName,
		EndDate:     e.EndDate.Format(time.DateOnly),
	})
	if err != nil {
		m.log.Error("failed to send lease expired email", "leaseId", e.LeaseID, "error", err)
		return err
	}
	m.log.Info("lease expired email sent", "leaseId", e.LeaseID)
	return nil
}

var _ events.Handler = (*Module)(nil)
