package assess

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pkarpov/claimsift/internal/model"
)

func TestVerify_EmptyName(t *testing.T) {
	v := NewAttorneyVerifier(&fakeProvider{resp: "never called"}, nil)

	got := v.Verify(context.Background(), "", "jane@firm.law", "")

	if got != (model.PartyVerification{}) {
		t.Errorf("Expected all-unset verification for empty name, got %+v", got)
	}
}

func TestVerify_ProfessionalDomain(t *testing.T) {
	v := NewAttorneyVerifier(&fakeProvider{resp: "The firm appears legitimate."}, nil)

	got := v.Verify(context.Background(), "Jane Roe", "jane@levinelaw.com", "FL")

	if !got.EmailVerified || !got.FirmVerified {
		t.Error("Expected professional domain to set both email and firm flags")
	}
	if got.BarStatus != model.CredentialLikelyActive {
		t.Errorf("Expected Likely Active, got %q", got.BarStatus)
	}
	if got.State != "FL" {
		t.Errorf("Expected state FL, got %q", got.State)
	}
}

func TestVerify_GenericDomain(t *testing.T) {
	v := NewAttorneyVerifier(&fakeProvider{resp: "No notable indicators."}, nil)

	got := v.Verify(context.Background(), "Jane Roe", "jane.roe@gmail.com", "")

	if got.EmailVerified || got.FirmVerified {
		t.Error("Expected a consumer mail domain to leave verification flags unset")
	}
	if got.BarStatus != model.CredentialUnknown {
		t.Errorf("Expected Unknown status, got %q", got.BarStatus)
	}
}

func TestVerify_ServiceErrorKeepsDomainSignal(t *testing.T) {
	v := NewAttorneyVerifier(&fakeProvider{err: errors.New("unavailable")}, nil)

	got := v.Verify(context.Background(), "Jane Roe", "jane@levinelaw.com", "")

	if !got.EmailVerified || !got.FirmVerified {
		t.Error("Expected local domain signal to survive a service failure")
	}
	if !strings.Contains(got.Notes, "Error verifying attorney") {
		t.Errorf("Expected error note, got %q", got.Notes)
	}
	if got.BarStatus != model.CredentialUnknown {
		t.Errorf("Expected Unknown status on failure, got %q", got.BarStatus)
	}
}

func TestVerify_NilProvider(t *testing.T) {
	v := NewAttorneyVerifier(nil, nil)

	got := v.Verify(context.Background(), "Jane Roe", "jane@levinelaw.com", "")

	if got.Notes != "Analysis service not configured" {
		t.Errorf("Expected unconfigured note, got %q", got.Notes)
	}
	if !got.EmailVerified {
		t.Error("Expected the local domain check to run without a provider")
	}
}

func TestVerify_NoEmail(t *testing.T) {
	v := NewAttorneyVerifier(&fakeProvider{resp: "questionable information"}, nil)

	got := v.Verify(context.Background(), "Jane Roe", "", "")

	if got.EmailVerified || got.FirmVerified {
		t.Error("Expected no domain signal without an email address")
	}
	if got.BarStatus != model.CredentialNeedsReview {
		t.Errorf("Expected Requires Verification, got %q", got.BarStatus)
	}
	if got.WebsiteReachable != nil {
		t.Error("Expected website flag to stay unset")
	}
}

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@firm.law", "firm.law"},
		{"weird@quoted@firm.law", "firm.law"},
		{"no-at-sign", ""},
		{"trailing@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := emailDomain(tt.email); got != tt.want {
			t.Errorf("emailDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
