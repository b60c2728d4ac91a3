package model

// Consistency score labels for multi-report analysis. ConsistencySingle is
// used when only one sub-report exists: a single source cannot be internally
// inconsistent, so no categorical score is forced.
const (
	ConsistencyHigh   = "High"
	ConsistencyMedium = "Medium"
	ConsistencyLow    = "Low"
	ConsistencySingle = "Single report - consistency assessment not applicable"
)

// ConsolidatedAnalysis is the synthesized view over N sub-reports of the
// same case. The consistency score is computed mechanically and never
// depends on the text-analysis call; the narrative, key findings and
// recommendations do, and degrade to explicit placeholders on failure.
type ConsolidatedAnalysis struct {
	ReportCount      int      `json:"number_of_reports"`
	ReportNumbers    []string `json:"reports_analyzed"`
	Narrative        string   `json:"analysis"`
	KeyFindings      []string `json:"key_findings"` // capped at 5
	ConsistencyScore string   `json:"consistency_score"`
	Recommendations  []string `json:"recommendations"` // capped at 3
}
