package assess

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pkarpov/claimsift/internal/llm"
	"github.com/pkarpov/claimsift/internal/model"
)

const attorneyInstructions = `You are an expert in attorney background verification.
Analyze attorney information for credibility and legitimacy.
Consider experience, specialization, and professional standing.
Flag potential issues with unlicensed practice or questionable firms.
Provide insights on attorney capability and case handling likelihood.`

// AttorneyVerifier assesses the plausibility of the attorney named on a
// case. The email-domain signal is computed locally and deterministically
// and is never overwritten by the service narrative; only the
// credential-status label depends on the analysis text.
type AttorneyVerifier struct {
	provider llm.Provider
	probe    *WebsiteProbe // optional
}

// NewAttorneyVerifier creates a new verifier. probe may be nil to disable
// the firm-website reachability check.
func NewAttorneyVerifier(provider llm.Provider, probe *WebsiteProbe) *AttorneyVerifier {
	return &AttorneyVerifier{provider: provider, probe: probe}
}

// Verify assesses the given attorney. An empty name yields an unset record
// without a service call.
func (v *AttorneyVerifier) Verify(ctx context.Context, name, email, state string) model.PartyVerification {
	if strings.TrimSpace(name) == "" {
		return model.PartyVerification{}
	}

	verification := model.PartyVerification{
		Name:  name,
		State: state,
	}

	// Local deterministic email-domain check. Independent of whatever the
	// service narrative says below.
	domain := emailDomain(email)
	if domain != "" && !isGenericMailDomain(domain) {
		verification.EmailVerified = true
		verification.FirmVerified = true

		if v.probe != nil {
			if reachable, ok := v.probe.Check(ctx, domain); ok {
				verification.WebsiteReachable = &reachable
			}
		}
	}

	content := ""
	if v.provider != nil {
		prompt := fmt.Sprintf(`Analyze the following attorney information for legitimacy and professional standing:

Attorney Name: %s
Email: %s
State: %s

Please provide analysis on:
1. Typical bar admission patterns for this name
2. Email domain legitimacy (professional vs generic)
3. Common red flags or legitimacy indicators
4. Recommended verification steps
5. Overall credibility assessment

Note: This is for general analysis only, not actual bar database lookup.`,
			name, email, stateOrUnknown(state))

		resp, err := v.provider.Generate(ctx, attorneyInstructions, prompt)
		if err != nil {
			log.Printf("attorney verification call failed for %q: %v", name, err)
			verification.Notes = fmt.Sprintf("Error verifying attorney: %v", err)
		} else {
			content = resp
			verification.Notes = resp
		}
	} else {
		verification.Notes = "Analysis service not configured"
	}

	verification.BarStatus = classifyCredential(content)

	return verification
}

// emailDomain returns the @-domain of the address, or "".
func emailDomain(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.TrimSpace(email[at+1:])
}

func stateOrUnknown(state string) string {
	if state == "" {
		return "Unknown"
	}
	return state
}
