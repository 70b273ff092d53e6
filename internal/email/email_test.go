package email

import (
	"strings"
	"testing"
)

func TestRenderApplicationDecision(t *testing.T) {
	tests := []struct {
		name     string
		msg      ApplicationDecision
		contains []string
		excludes []string
	}{
		{
			name:     "approved with lease",
			msg:      ApplicationDecision{ApplicantName: "Asha", AssetName: "Retail Kiosk", ApplicationID: "app-1", Approved: true, LeaseID: "lease-9"},
			contains: []string{"Dear Asha", "has been approved", "lease-9", "app-1"},
			excludes: []string{"unable to approve", "Reviewer note"},
		},
		{
			name:     "rejected with note",
			msg:      ApplicationDecision{ApplicantName: "Asha", AssetName: "Retail Kiosk", ApplicationID: "app-1", Note: "incomplete <documents>"},
			contains: []string{"unable to approve", "Reviewer note: incomplete &lt;documents&gt;"},
			excludes: []string{"has been approved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderApplicationDecision(tt.msg)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(html, want) {
					t.Fatalf("expected %q in %s", want, html)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(html, unwanted) {
					t.Fatalf("did not expect %q in %s", unwanted, html)
				}
			}
		})
	}
}

func TestRenderOtherTemplates(t *testing.T) {
	received, err := renderApplicationReceived(ApplicationReceived{ApplicantName: "Ravi", AssetName: "Warehouse Space", ApplicationID: "app-2"})
	if err != nil {
		t.Fatalf("render received: %v", err)
	}
	if !strings.Contains(received, "Warehouse Space") || !strings.Contains(received, "<title>Application received</title>") {
		t.Fatalf("unexpected received email: %s", received)
	}

	expired, err := renderLeaseExpired(LeaseExpired{LeaseHolder: "Ravi", AssetName: "Warehouse Space", EndDate: "2025-03-31"})
	if err != nil {
		t.Fatalf("render expired: %v", err)
	}
	if !strings.Contains(expired, "ended on 2025-03-31") {
		t.Fatalf("unexpected expired email: %s", expired)
	}
}

func TestSMTPMessage(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "noreply@example.com", "Railway Estates")
	if _, err := s.message("not-an-address", "subject", "<p>x</p>"); err == nil {
		t.Fatalf("expected invalid recipient to fail")
	}
	if _, err := s.message("applicant@example.com", "subject", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
