package model

// Political-leaning labels produced by the location classifier.
const (
	LeaningLiberal      = "Liberal"
	LeaningConservative = "Conservative"
	LeaningNeutral      = "Mixed/Neutral"
)

// Tort-environment labels.
const (
	TortFriendly = "Tort-Friendly"
	TortNeutral  = "Neutral"
	TortHostile  = "Tort-Hostile"
)

// Risk levels.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// LocationAssessment is the derived jurisdictional risk classification for
// an accident location. City/county/state come from local parsing of the
// location string; the categorical labels come from keyword scans of the
// text-analysis response, defaulting to the neutral/medium categories so the
// report always has displayable values.
type LocationAssessment struct {
	City             string `json:"city"`
	County           string `json:"county"`
	State            string `json:"state"`
	PoliticalLeaning string `json:"political_leaning"`
	TortEnvironment  string `json:"tort_environment"`
	RiskLevel        string `json:"risk_level"`
	Notes            string `json:"notes"`
}

// Credential-status labels for party verification.
const (
	CredentialLikelyActive = "Likely Active"
	CredentialNeedsReview  = "Requires Verification"
	CredentialUnknown      = "Unknown"
)

// PartyVerification is the derived plausibility assessment for the attorney
// named on a case. EmailVerified and FirmVerified are computed locally from
// the email domain and are never overwritten by the service narrative.
type PartyVerification struct {
	Name          string `json:"name"`
	BarStatus     string `json:"bar_status"`
	State         string `json:"state"`
	EmailVerified bool   `json:"email_verified"`
	FirmVerified  bool   `json:"firm_verified"`

	// WebsiteReachable records the optional firm-website probe result.
	// Nil when the probe was skipped or disallowed by robots.txt.
	WebsiteReachable *bool `json:"website_reachable,omitempty"`

	Notes string `json:"notes"`
}
