package assess

import (
	"strings"

	"github.com/pkarpov/claimsift/internal/model"
)

// vocabEntry maps a set of trigger keywords to a categorical label. The
// tables below are the full classification vocabulary: classification is a
// deterministic function of the (lower-cased) analysis text, auditable and
// testable independent of the service call that produced it.
type vocabEntry struct {
	Keywords []string
	Label    string
}

var leaningVocab = []vocabEntry{
	{[]string{"liberal", "democrat"}, model.LeaningLiberal},
	{[]string{"conservative", "republican"}, model.LeaningConservative},
}

// tortVocab pairs each tort-environment label with its risk level.
var tortVocab = []struct {
	Keywords    []string
	Environment string
	Risk        string
}{
	{[]string{"tort-friendly", "plaintiff-friendly"}, model.TortFriendly, model.RiskHigh},
	{[]string{"tort-hostile", "defense-friendly"}, model.TortHostile, model.RiskLow},
}

var credentialVocab = []vocabEntry{
	{[]string{"legitimate", "professional"}, model.CredentialLikelyActive},
	{[]string{"questionable", "red flag"}, model.CredentialNeedsReview},
}

// genericMailProviders is the fixed list of consumer mail domains. Any other
// @-domain is treated as professional.
var genericMailProviders = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
	"aol.com", "icloud.com", "me.com", "mac.com",
}

// classifyLeaning maps analysis text to a political-leaning label,
// defaulting to the neutral category.
func classifyLeaning(content string) string {
	lower := strings.ToLower(content)
	for _, entry := range leaningVocab {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Label
			}
		}
	}
	return model.LeaningNeutral
}

// classifyTort maps analysis text to tort-environment and risk labels,
// defaulting to neutral/medium so the report always has displayable values.
func classifyTort(content string) (environment, risk string) {
	lower := strings.ToLower(content)
	for _, entry := range tortVocab {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Environment, entry.Risk
			}
		}
	}
	return model.TortNeutral, model.RiskMedium
}

// classifyCredential maps analysis text to a credential-status label.
func classifyCredential(content string) string {
	lower := strings.ToLower(content)
	for _, entry := range credentialVocab {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Label
			}
		}
	}
	return model.CredentialUnknown
}

// isGenericMailDomain reports whether the domain is a consumer provider.
func isGenericMailDomain(domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	for _, generic := range genericMailProviders {
		if domain == generic || strings.HasSuffix(domain, "."+generic) {
			return true
		}
	}
	return false
}
