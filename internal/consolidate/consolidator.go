package consolidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/pkarpov/claimsift/internal/llm"
	"github.com/pkarpov/claimsift/internal/model"
)

const consolidationInstructions = `You are an expert in analyzing and synthesizing information from multiple reports.
Compare and contrast data from different sources for consistency and discrepancies.
Identify key patterns, trends, and anomalies across reports.
Provide a synthesized summary with highlights and critical insights.
Flag any conflicting information or major gaps in the data.`

// narrativePreviewRunes bounds the per-report narrative snippet included in
// the prompt so a long report cannot blow up the request.
const narrativePreviewRunes = 200

const (
	maxKeyFindings     = 5
	maxRecommendations = 3
)

// Consolidator synthesizes N sub-reports of the same case into one analysis.
// The consistency score is always computed mechanically; only the narrative,
// key findings and recommendations depend on the text-analysis call, and a
// failed call degrades those to explicit placeholders.
type Consolidator struct {
	provider llm.Provider
}

// NewConsolidator creates a new consolidator. A nil provider degrades the
// narrative but never the score.
func NewConsolidator(provider llm.Provider) *Consolidator {
	return &Consolidator{provider: provider}
}

// subReportSummary is the compact per-report digest used to seed the prompt.
type subReportSummary struct {
	ReportNumber       string   `json:"report_number"`
	IncidentDate       string   `json:"incident_date"`
	Location           string   `json:"location"`
	PartiesInvolved    []string `json:"parties_involved"`
	FaultDetermination string   `json:"fault_determination"`
	Violations         []string `json:"violations"`
	InjuriesReported   []string `json:"injuries_reported"`
	NarrativeSnippet   string   `json:"narrative_snippet"`
}

// Consolidate builds the ConsolidatedAnalysis for the given sub-reports.
func (c *Consolidator) Consolidate(ctx context.Context, caseRec model.CaseRecord, reports []model.IncidentSubReport) model.ConsolidatedAnalysis {
	analysis := model.ConsolidatedAnalysis{
		ReportCount:      len(reports),
		ReportNumbers:    []string{},
		KeyFindings:      []string{},
		Recommendations:  []string{},
		ConsistencyScore: Consistency(reports),
	}
	for _, r := range reports {
		if r.ReportNumber != "" {
			analysis.ReportNumbers = append(analysis.ReportNumbers, r.ReportNumber)
		}
	}
	if len(reports) == 0 {
		analysis.Narrative = "No sub-reports available for analysis"
		return analysis
	}

	if c.provider == nil {
		analysis.Narrative = "Analysis service not configured - narrative synthesis not performed"
		return analysis
	}

	resp, err := c.provider.Generate(ctx, consolidationInstructions, c.buildPrompt(caseRec, reports))
	if err != nil {
		log.Printf("multi-report analysis call failed: %v", err)
		analysis.Narrative = fmt.Sprintf("Error occurred during analysis: %v", err)
		return analysis
	}

	analysis.Narrative = resp
	analysis.KeyFindings = extractKeyFindings(resp)
	analysis.Recommendations = extractRecommendations(resp)
	return analysis
}

func (c *Consolidator) buildPrompt(caseRec model.CaseRecord, reports []model.IncidentSubReport) string {
	summaries := make([]subReportSummary, 0, len(reports))
	for _, r := range reports {
		summaries = append(summaries, subReportSummary{
			ReportNumber:       r.ReportNumber,
			IncidentDate:       r.IncidentDate,
			Location:           r.Location,
			PartiesInvolved:    r.PartiesInvolved,
			FaultDetermination: r.FaultDetermination,
			Violations:         r.Violations,
			InjuriesReported:   r.InjuriesReported,
			NarrativeSnippet:   truncateRunes(r.Narrative, narrativePreviewRunes),
		})
	}
	summaryJSON, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`Analyze the following multiple police reports for a legal case and provide comprehensive insights:

Case Information:
- Client: %s
- Accident Type: %s
- Date of Loss: %s

Police Reports Summary:
%s

Please provide a detailed analysis covering:

1. **Consistency Analysis**: Are the reports consistent with each other? Any discrepancies in facts, dates, locations, or fault determinations?

2. **Fault and Liability**: What do the reports indicate about fault and liability?

3. **Key Evidence**: What are the most important pieces of evidence from these reports?

4. **Red Flags**: Any concerning inconsistencies, missing information, or suspicious patterns?

5. **Recommendations**: What additional information or clarification should be requested?

Format your response with clear headings and bullet points for easy reading.`,
		caseRec.ClientName, caseRec.AccidentType, caseRec.DateOfLoss, summaryJSON)
}

// extractKeyFindings collects bullet lines from a key/critical/red-flag
// section of the response, capped at maxKeyFindings.
func extractKeyFindings(analysisText string) []string {
	findings := []string{}
	inSection := false

	for _, line := range strings.Split(analysisText, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "key evidence") || strings.Contains(lower, "important") ||
			strings.Contains(lower, "critical") || strings.Contains(lower, "red flag"):
			inSection = true
		case strings.HasPrefix(line, "#"):
			inSection = false
		case inSection && strings.HasPrefix(line, "-"):
			findings = append(findings, strings.TrimSpace(line[1:]))
		}
	}

	if len(findings) > maxKeyFindings {
		findings = findings[:maxKeyFindings]
	}
	return findings
}

// extractRecommendations collects bullet lines from a recommendation
// section, capped at maxRecommendations.
func extractRecommendations(analysisText string) []string {
	recommendations := []string{}
	inSection := false

	for _, line := range strings.Split(analysisText, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.Contains(strings.ToLower(line), "recommendation"):
			inSection = true
		case strings.HasPrefix(line, "#"):
			inSection = false
		case inSection && strings.HasPrefix(line, "-"):
			recommendations = append(recommendations, strings.TrimSpace(line[1:]))
		}
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
