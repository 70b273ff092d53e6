package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) message(toEmail, subject, htmlContent string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg, err := s.message(toEmail, subject, htmlContent)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendApplicationReceivedEmail(ctx context.Context, toEmail string, m ApplicationReceived) error {
	content, err := renderApplicationReceived(m)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectApplicationReceivedFmt, m.AssetName), content)
}

func (s *SMTPSender) SendApplicationDecisionEmail(ctx context.Context, toEmail string, m ApplicationDecision) error {
	content, err := renderApplicationDecision(m)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectApplicationRejectedFmt, m.AssetName)
	if m.Approved {
		subject = fmt.Sprintf(subjectApplicationApprovedFmt, m.AssetName)
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendLeaseExpiredEmail(ctx context.Context, toEmail string, m LeaseExpired) error {
	content, err := renderLeaseExpired(m)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectLeaseExpiredFmt, m.AssetName), content)
}

func renderApplicationReceived(m ApplicationReceived) (string, error) {
	return renderEmailTemplate("application_received.html", applicationReceivedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Application received",
			Heading: "We received your application",
		},
		ApplicationReceived: m,
	})
}

func renderApplicationDecision(m ApplicationDecision) (string, error) {
	heading := "Your application was not approved"
	if m.Approved {
		heading = "Your application is approved"
	}
	return renderEmailTemplate("application_decision.html", applicationDecisionEmailData{
		baseEmailData: baseEmailData{
			Title:   "Application update",
			Heading: heading,
		},
		ApplicationDecision: m,
	})
}

func renderLeaseExpired(m LeaseExpired) (string, error) {
	return renderEmailTemplate("lease_expired.html", leaseExpiredEmailData{
		baseEmailData: baseEmailData{
			Title:   "Lease ended",
			Heading: "Your lease has ended",
		},
		LeaseExpired: m,
	})
}
