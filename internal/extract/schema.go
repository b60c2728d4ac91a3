package extract

import (
	"fmt"
	"strings"
)

// Field is one named field in an extraction schema, with the
// natural-language description handed to the text-analysis service.
type Field struct {
	Name        string
	Description string
	List        bool
}

// Schema is the field set for one extractable document type.
type Schema struct {
	Name   string
	Fields []Field
}

// PromptBlock renders the schema as the JSON-shaped template the service is
// asked to fill in. Unknown fields must come back as explicit null so that
// "asked and unknown" is distinguishable from "not asked".
func (s Schema) PromptBlock() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range s.Fields {
		if f.List {
			fmt.Fprintf(&b, "    %q: [%q]", f.Name, f.Description)
		} else {
			fmt.Fprintf(&b, "    %q: %q", f.Name, f.Description)
		}
		if i < len(s.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// CaseSchema describes the structured case facts pulled from a submission.
var CaseSchema = Schema{
	Name: "case",
	Fields: []Field{
		{Name: "client_name", Description: "Name of the injured party/claimant"},
		{Name: "date_of_loss", Description: "Date when accident/incident occurred"},
		{Name: "accident_type", Description: "Type of accident (auto, slip/fall, etc.)"},
		{Name: "injuries", Description: "List of specific injuries mentioned", List: true},
		{Name: "treatment", Description: "List of medical treatments received", List: true},
		{Name: "medical_providers", Description: "Names of doctors, hospitals, clinics", List: true},
		{Name: "insurance_info", Description: "Insurance company and coverage details"},
		{Name: "policy_limits", Description: "Policy limits if mentioned"},
		{Name: "liability_info", Description: "Liability/fault information"},
		{Name: "attorney_name", Description: "Name of the attorney/lawyer"},
		{Name: "attorney_email", Description: "Email address of attorney"},
		{Name: "law_firm", Description: "Name of law firm"},
		{Name: "accident_location", Description: "Location where accident occurred"},
	},
}

// SubReportSchema describes one police/incident report instance.
var SubReportSchema = Schema{
	Name: "sub_report",
	Fields: []Field{
		{Name: "report_number", Description: "Report number of the police report"},
		{Name: "report_date", Description: "Date when the report was filed"},
		{Name: "incident_date", Description: "Date when the incident occurred"},
		{Name: "incident_time", Description: "Time when the incident occurred"},
		{Name: "location", Description: "Location of the incident"},
		{Name: "officers", Description: "List of officers mentioned in the report", List: true},
		{Name: "parties_involved", Description: "List of parties involved in the incident", List: true},
		{Name: "vehicles", Description: "List of vehicles involved", List: true},
		{Name: "violations", Description: "List of violations or charges", List: true},
		{Name: "narrative", Description: "Narrative description of the incident"},
		{Name: "weather_conditions", Description: "Weather conditions at the time of the incident"},
		{Name: "road_conditions", Description: "Road conditions at the time of the incident"},
		{Name: "traffic_control", Description: "Traffic control measures in place"},
		{Name: "damage_assessment", Description: "Assessment of damages"},
		{Name: "injuries_reported", Description: "List of reported injuries", List: true},
		{Name: "fault_determination", Description: "Determination of fault or liability"},
		{Name: "witness_statements", Description: "List of witness statements", List: true},
		{Name: "citations_issued", Description: "List of citations issued", List: true},
		{Name: "towed_vehicles", Description: "List of towed vehicles", List: true},
		{Name: "property_damage", Description: "Description of property damage"},
	},
}
