package assess

import (
	"testing"

	"github.com/pkarpov/claimsift/internal/model"
)

func TestClassifyLeaning(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"liberal keyword", "The county leans liberal in recent elections.", model.LeaningLiberal},
		{"democrat keyword", "A reliably Democrat jurisdiction.", model.LeaningLiberal},
		{"conservative keyword", "Historically conservative jury pools.", model.LeaningConservative},
		{"republican keyword", "The area votes Republican.", model.LeaningConservative},
		{"no keyword", "Verdicts here vary widely by case type.", model.LeaningNeutral},
		{"empty text", "", model.LeaningNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLeaning(tt.text); got != tt.want {
				t.Errorf("classifyLeaning(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyTort(t *testing.T) {
	env, risk := classifyTort("This is a notably tort-friendly venue.")
	if env != model.TortFriendly || risk != model.RiskHigh {
		t.Errorf("Expected Tort-Friendly/High, got %q/%q", env, risk)
	}

	env, risk = classifyTort("Known as a defense-friendly jurisdiction.")
	if env != model.TortHostile || risk != model.RiskLow {
		t.Errorf("Expected Tort-Hostile/Low, got %q/%q", env, risk)
	}

	env, risk = classifyTort("No strong pattern either way.")
	if env != model.TortNeutral || risk != model.RiskMedium {
		t.Errorf("Expected neutral defaults, got %q/%q", env, risk)
	}
}

func TestClassifyCredential(t *testing.T) {
	if got := classifyCredential("The attorney appears legitimate and established."); got != model.CredentialLikelyActive {
		t.Errorf("Expected Likely Active, got %q", got)
	}
	if got := classifyCredential("Several red flag indicators in the firm name."); got != model.CredentialNeedsReview {
		t.Errorf("Expected Requires Verification, got %q", got)
	}
	if got := classifyCredential("Insufficient information."); got != model.CredentialUnknown {
		t.Errorf("Expected Unknown, got %q", got)
	}
}

func TestIsGenericMailDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"gmail.com", true},
		{"GMAIL.COM", true},
		{"mail.yahoo.com", true},
		{"levinelaw.com", false},
		{"outlook.com", true},
		{"notgmail.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isGenericMailDomain(tt.domain); got != tt.want {
			t.Errorf("isGenericMailDomain(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}
