package phone

import (
	"errors"
	"testing"
)

func TestParseE164(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "national mobile", input: "98765 43210", want: "+919876543210"},
		{name: "international", input: "+91 98765-43210", want: "+919876543210"},
		{name: "other country", input: "+1 650-253-0000", want: "+16502530000"},
		{name: "blank", input: "   ", wantErr: true},
		{name: "letters", input: "call me", wantErr: true},
		{name: "too short", input: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseE164(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNumber) {
					t.Fatalf("expected ErrInvalidNumber, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeE164KeepsUnparsableInput(t *testing.T) {
	if got := NormalizeE164("  ext 12 "); got != "ext 12" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
}
