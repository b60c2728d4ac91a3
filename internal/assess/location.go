package assess

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pkarpov/claimsift/internal/llm"
	"github.com/pkarpov/claimsift/internal/model"
)

const locationInstructions = `You are an expert in geographic risk analysis for legal cases.
Analyze accident locations for tort environment and jury tendencies.
Consider political demographics, historical verdict patterns, and local legal culture.
Classify jurisdictions as tort-friendly, neutral, or tort-hostile.
Provide insights on potential settlement values and litigation risks.
Base analysis on known data about counties, cities, and regions.`

// LocationAssessor classifies accident locations into jurisdictional risk
// categories. The free-text analysis comes from the service; the categorical
// labels come from deterministic keyword scans, and the city/county/state
// split is local comma parsing, never the service response.
type LocationAssessor struct {
	provider llm.Provider
}

// NewLocationAssessor creates a new location assessor.
func NewLocationAssessor(provider llm.Provider) *LocationAssessor {
	return &LocationAssessor{provider: provider}
}

// Assess analyzes the given location string. Empty input yields an all-unset
// assessment without invoking the service.
func (a *LocationAssessor) Assess(ctx context.Context, location string) model.LocationAssessment {
	if strings.TrimSpace(location) == "" {
		return model.LocationAssessment{}
	}

	assessment := model.LocationAssessment{}
	parseLocationParts(location, &assessment)

	content := ""
	if a.provider != nil {
		prompt := fmt.Sprintf(`Analyze the legal/tort environment for the following location: %s

Please provide analysis on:
1. Political demographics (liberal/conservative leaning)
2. Historical jury verdict patterns
3. Tort-friendly vs tort-hostile environment
4. Settlement vs litigation tendencies
5. Overall risk assessment for insurance claims
6. Notable local legal factors

Format your response with clear sections and risk level assessment.`, location)

		resp, err := a.provider.Generate(ctx, locationInstructions, prompt)
		if err != nil {
			log.Printf("location analysis call failed for %q: %v", location, err)
			assessment.Notes = fmt.Sprintf("Error analyzing location: %v", err)
		} else {
			content = resp
			assessment.Notes = resp
		}
	} else {
		assessment.Notes = "Analysis service not configured"
	}

	// Keyword classification over whatever text came back; empty text falls
	// through to the neutral defaults, which the report can always display.
	assessment.PoliticalLeaning = classifyLeaning(content)
	assessment.TortEnvironment, assessment.RiskLevel = classifyTort(content)

	return assessment
}

// parseLocationParts comma-splits "City, County, State" style input.
func parseLocationParts(location string, assessment *model.LocationAssessment) {
	parts := strings.Split(location, ",")
	if len(parts) >= 2 {
		assessment.City = strings.TrimSpace(parts[0])
		assessment.State = strings.TrimSpace(parts[len(parts)-1])
		if len(parts) >= 3 {
			assessment.County = strings.TrimSpace(parts[1])
		}
	} else {
		assessment.City = strings.TrimSpace(location)
	}
}
