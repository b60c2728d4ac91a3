package model

// CaseRecord holds the structured case facts extracted from one inbound
// submission (email body plus attachment text). Every field is optional:
// absence is a common, valid state and list fields are empty, never nil.
// A CaseRecord is created once by the extractor and never mutated after.
type CaseRecord struct {
	ClientName       string   `json:"client_name"`
	DateOfLoss       string   `json:"date_of_loss"`
	AccidentType     string   `json:"accident_type"`
	Injuries         []string `json:"injuries"`
	Treatment        []string `json:"treatment"`
	MedicalProviders []string `json:"medical_providers"`
	InsuranceInfo    string   `json:"insurance_info"`
	PolicyLimits     string   `json:"policy_limits"`
	LiabilityInfo    string   `json:"liability_info"`
	AttorneyName     string   `json:"attorney_name"`
	AttorneyEmail    string   `json:"attorney_email"`
	LawFirm          string   `json:"law_firm"`
	AccidentLocation string   `json:"accident_location"`

	// Degraded marks a record produced entirely by the fallback path or
	// left empty after a total extraction failure.
	Degraded bool `json:"-"`
}

// Normalize replaces nil list fields with empty slices.
func (r *CaseRecord) Normalize() {
	if r.Injuries == nil {
		r.Injuries = []string{}
	}
	if r.Treatment == nil {
		r.Treatment = []string{}
	}
	if r.MedicalProviders == nil {
		r.MedicalProviders = []string{}
	}
}
