package model

// IncidentSubReport is one parsed instance of a repeatable document type,
// typically a single police report inside a multi-report submission.
// Sub-reports are independent and immutable once created; downstream stages
// only read them.
type IncidentSubReport struct {
	ReportNumber       string   `json:"report_number"`
	ReportDate         string   `json:"report_date"`
	IncidentDate       string   `json:"incident_date"`
	IncidentTime       string   `json:"incident_time"`
	Location           string   `json:"location"`
	Officers           []string `json:"officers"`
	PartiesInvolved    []string `json:"parties_involved"`
	Vehicles           []string `json:"vehicles"`
	Violations         []string `json:"violations"`
	Narrative          string   `json:"narrative"`
	WeatherConditions  string   `json:"weather_conditions"`
	RoadConditions     string   `json:"road_conditions"`
	TrafficControl     string   `json:"traffic_control"`
	DamageAssessment   string   `json:"damage_assessment"`
	InjuriesReported   []string `json:"injuries_reported"`
	FaultDetermination string   `json:"fault_determination"`
	WitnessStatements  []string `json:"witness_statements"`
	CitationsIssued    []string `json:"citations_issued"`
	TowedVehicles      []string `json:"towed_vehicles"`
	PropertyDamage     string   `json:"property_damage"`

	Degraded bool `json:"-"`
}

// Normalize replaces nil list fields with empty slices.
func (r *IncidentSubReport) Normalize() {
	for _, p := range []*[]string{
		&r.Officers, &r.PartiesInvolved, &r.Vehicles, &r.Violations,
		&r.InjuriesReported, &r.WitnessStatements, &r.CitationsIssued,
		&r.TowedVehicles,
	} {
		if *p == nil {
			*p = []string{}
		}
	}
}
