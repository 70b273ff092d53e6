package email

import (
	"context"

	"railspace_backend/platform/config"
)

// Sender delivers the transactional emails of the leasing workflow.
type Sender interface {
	SendApplicationReceivedEmail(ctx context.Context, toEmail string, msg ApplicationReceived) error
	SendApplicationDecisionEmail(ctx context.Context, toEmail string, msg ApplicationDecision) error
	SendLeaseExpiredEmail(ctx context.Context, toEmail string, msg LeaseExpired) error
}

// ApplicationReceived confirms a submitted application.
type ApplicationReceived struct {
	ApplicantName string
	AssetName     string
	ApplicationID string
}

// ApplicationDecision tells the applicant the review outcome.
type ApplicationDecision struct {
	ApplicantName string
	AssetName     string
	ApplicationID string
	Approved      bool
	Note          string
	LeaseID       string
}

// LeaseExpired tells a lease holder their lease has ended.
type LeaseExpired struct {
	LeaseHolder string
	AssetName   string
	EndDate     string
}

// NewSender returns an SMTP sender when email is enabled and a NoopSender otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

type NoopSender struct{}

func (NoopSender) SendApplicationReceivedEmail(context.Context, string, ApplicationReceived) error {
	return nil
}

func (NoopSender) SendApplicationDecisionEmail(context.Context, string, ApplicationDecision) error {
	return nil
}

func (NoopSender) SendLeaseExpiredEmail(context.Context, string, LeaseExpired) error {
	return nil
}

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)
