package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/pkarpov/claimsift/internal/llm"
	"github.com/pkarpov/claimsift/internal/model"
)

const extractionInstructions = `You are an expert legal case data extraction specialist.
Extract structured information from legal documents and emails.
Focus on identifying key case elements: client info, accident details, injuries, treatment, insurance, liability.
Be thorough but precise in your extractions.
Pay special attention to dates, names, medical terms, and financial information.
Return a single JSON object. Use null for any field that is not explicitly stated; never omit a field.`

const analysisInstructions = `You are an expert legal underwriting analyst.
Identify gaps in case information that are critical for underwriting decisions.
Generate intelligent follow-up questions for law firms.
Flag red flags or inconsistencies in the case information.
Provide actionable insights for underwriters.`

// Extractor turns raw document text into typed records via the text-analysis
// service, with a deterministic regex fallback when the structured response
// cannot be parsed. It never returns an error past its boundary: total
// failure yields an all-unset record flagged Degraded.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates a new structured extractor. A nil provider is valid
// and forces every extraction through the fallback path.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// ExtractCase extracts structured case facts from combined attachment text
// and the email body.
func (e *Extractor) ExtractCase(ctx context.Context, docText, emailBody string) model.CaseRecord {
	full := fmt.Sprintf("EMAIL BODY:\n%s\n\nDOCUMENT CONTENT:\n%s", emailBody, docText)

	var rec model.CaseRecord
	fields, degraded := e.extract(ctx, CaseSchema, full)

	rec.ClientName = fieldString(fields, "client_name")
	rec.DateOfLoss = fieldString(fields, "date_of_loss")
	rec.AccidentType = fieldString(fields, "accident_type")
	rec.Injuries = fieldList(fields, "injuries")
	rec.Treatment = fieldList(fields, "treatment")
	rec.MedicalProviders = fieldList(fields, "medical_providers")
	rec.InsuranceInfo = fieldString(fields, "insurance_info")
	rec.PolicyLimits = fieldString(fields, "policy_limits")
	rec.LiabilityInfo = fieldString(fields, "liability_info")
	rec.AttorneyName = fieldString(fields, "attorney_name")
	rec.AttorneyEmail = fieldString(fields, "attorney_email")
	rec.LawFirm = fieldString(fields, "law_firm")
	rec.AccidentLocation = fieldString(fields, "accident_location")
	rec.Degraded = degraded
	rec.Normalize()

	return rec
}

// ExtractSubReport extracts one police/incident report instance.
func (e *Extractor) ExtractSubReport(ctx context.Context, docText string) model.IncidentSubReport {
	var rec model.IncidentSubReport
	fields, degraded := e.extract(ctx, SubReportSchema, docText)

	rec.ReportNumber = fieldString(fields, "report_number")
	rec.ReportDate = fieldString(fields, "report_date")
	rec.IncidentDate = fieldString(fields, "incident_date")
	rec.IncidentTime = fieldString(fields, "incident_time")
	rec.Location = fieldString(fields, "location")
	rec.Officers = fieldList(fields, "officers")
	rec.PartiesInvolved = fieldList(fields, "parties_involved")
	rec.Vehicles = fieldList(fields, "vehicles")
	rec.Violations = fieldList(fields, "violations")
	rec.Narrative = fieldString(fields, "narrative")
	rec.WeatherConditions = fieldString(fields, "weather_conditions")
	rec.RoadConditions = fieldString(fields, "road_conditions")
	rec.TrafficControl = fieldString(fields, "traffic_control")
	rec.DamageAssessment = fieldString(fields, "damage_assessment")
	rec.InjuriesReported = fieldList(fields, "injuries_reported")
	rec.FaultDetermination = fieldString(fields, "fault_determination")
	rec.WitnessStatements = fieldList(fields, "witness_statements")
	rec.CitationsIssued = fieldList(fields, "citations_issued")
	rec.TowedVehicles = fieldList(fields, "towed_vehicles")
	rec.PropertyDamage = fieldString(fields, "property_damage")
	rec.Degraded = degraded
	rec.Normalize()

	return rec
}

// extract runs the two-stage strategy: structured decode first, regex
// fallback second. The bool result reports whether the fallback path was
// taken (a degraded result, logged but never an error).
func (e *Extractor) extract(ctx context.Context, schema Schema, text string) (map[string]any, bool) {
	if e.provider == nil {
		return anyFields(applyFallback(text)), true
	}

	prompt := fmt.Sprintf(
		"Please extract the following information from the provided content and format as JSON:\n\n%s\n\nContent to analyze:\n%s\n\nImportant: Only include information that is explicitly stated. Use null for missing information.",
		schema.PromptBlock(), text,
	)

	resp, err := e.provider.Generate(ctx, extractionInstructions, prompt)
	if err != nil {
		log.Printf("extraction call failed for %s schema, using fallback: %v", schema.Name, err)
		return anyFields(applyFallback(text)), true
	}

	obj := firstJSONObject(resp)
	if obj != "" {
		var fields map[string]any
		if err := json.Unmarshal([]byte(obj), &fields); err == nil {
			return fields, false
		}
		log.Printf("structured response for %s schema did not decode, using fallback", schema.Name)
	} else {
		log.Printf("no JSON object in response for %s schema, using fallback", schema.Name)
	}

	// The fallback scans the service response first (it often restates the
	// facts as labeled lines), then the source text.
	merged := applyFallback(resp)
	for field, value := range applyFallback(text) {
		if _, ok := merged[field]; !ok {
			merged[field] = value
		}
	}
	return anyFields(merged), true
}

// MissingInformation asks the analysis service for underwriting gaps and
// collects the bullet lines of its answer. On failure it returns a single
// explanatory entry so the report section is never silently omitted.
func (e *Extractor) MissingInformation(ctx context.Context, rec model.CaseRecord) []string {
	if e.provider == nil {
		return []string{"Analysis service not configured - completeness review not performed"}
	}

	prompt := fmt.Sprintf(`Analyze the following case information and identify what critical information is missing for proper underwriting analysis. Generate specific follow-up questions.

Case Data:
- Client Name: %s
- Date of Loss: %s
- Accident Type: %s
- Injuries: %s
- Treatment: %s
- Medical Providers: %s
- Insurance Info: %s
- Policy Limits: %s
- Liability Info: %s
- Accident Location: %s

Please provide:
1. A bullet list of missing critical information
2. Specific follow-up questions to ask the law firm
3. Priority level for each missing item (High/Medium/Low)

Focus on information essential for underwriting decisions.`,
		orText(rec.ClientName), orText(rec.DateOfLoss), orText(rec.AccidentType),
		listOrText(rec.Injuries), listOrText(rec.Treatment), listOrText(rec.MedicalProviders),
		orText(rec.InsuranceInfo), orText(rec.PolicyLimits), orText(rec.LiabilityInfo),
		orText(rec.AccidentLocation),
	)

	resp, err := e.provider.Generate(ctx, analysisInstructions, prompt)
	if err != nil {
		log.Printf("missing-information analysis failed: %v", err)
		return []string{"Error analyzing case completeness"}
	}

	var items []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			items = append(items, line)
		}
	}
	return items
}

// firstJSONObject returns the first balanced brace-delimited object in the
// text, or "" when none exists. Braces inside JSON strings are ignored.
func firstJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

// fieldString reads a string field leniently, tolerating numbers and nulls.
func fieldString(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	default:
		return ""
	}
}

// fieldList reads a list field leniently; a bare string becomes a one-item
// list, anything else an empty one.
func fieldList(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	}
	return nil
}

func anyFields(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func orText(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func listOrText(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}
