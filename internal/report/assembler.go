package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkarpov/claimsift/internal/model"
)

// AssembleInput collects everything the final report is built from. The
// extracted and derived records are consumed read-only.
type AssembleInput struct {
	Case         model.CaseRecord
	MissingInfo  []string
	Location     model.LocationAssessment
	Party        model.PartyVerification
	SubReports   []model.IncidentSubReport
	Consolidated *model.ConsolidatedAnalysis // nil when fewer than 2 sub-reports

	OriginalSubject string
	OriginalSender  string

	// Now is injectable for tests; Assemble falls back to time.Now.
	Now func() time.Time
}

// Assembler renders the consolidated case report. Section order is fixed:
// case summary, missing information, location assessment, party
// verification, per-sub-report facts, multi-report analysis, timestamp.
// Sections whose enrichment failed render an explicit placeholder, never
// disappear.
type Assembler struct{}

// NewAssembler creates a new report assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble renders the report as markdown text.
func (a *Assembler) Assemble(in AssembleInput) string {
	now := time.Now
	if in.Now != nil {
		now = in.Now
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Case Summary: %s | %s | %s\n\n",
		orText(in.Case.ClientName, "Unknown Client"),
		orText(in.Case.AccidentType, "Unknown Incident"),
		orText(in.Location.City, "Unknown Location"))
	fmt.Fprintf(&b, "Report ID: %s\n\n", uuid.NewString())

	a.writeCaseSummary(&b, in.Case)
	a.writeMissingInfo(&b, in.MissingInfo)
	a.writeLocation(&b, in.Location)
	a.writeParty(&b, in.Party)
	a.writeSubReports(&b, in.SubReports)
	a.writeConsolidated(&b, in.Consolidated)

	fmt.Fprintf(&b, "---\n*Report generated on %s*\n", now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "*Original Email: %s from %s*\n",
		orText(in.OriginalSubject, "(no subject)"),
		orText(in.OriginalSender, "(unknown sender)"))

	return b.String()
}

func (a *Assembler) writeCaseSummary(b *strings.Builder, c model.CaseRecord) {
	b.WriteString("## Case Summary (Extracted from Submission)\n\n")
	fmt.Fprintf(b, "**Claimant:** %s\n", orText(c.ClientName, "Not specified"))
	fmt.Fprintf(b, "**Date of Loss:** %s\n", orText(c.DateOfLoss, "Not specified"))
	fmt.Fprintf(b, "**Accident Type:** %s\n", orText(c.AccidentType, "Not specified"))
	fmt.Fprintf(b, "**Location:** %s\n\n", orText(c.AccidentLocation, "Not specified"))

	b.WriteString("### Injuries\n")
	writeList(b, c.Injuries, "No injuries specified")
	b.WriteString("\n### Medical Treatment\n")
	writeList(b, c.Treatment, "No treatment information specified")
	b.WriteString("\n### Medical Providers\n")
	writeList(b, c.MedicalProviders, "No medical providers specified")

	b.WriteString("\n### Insurance Information\n")
	fmt.Fprintf(b, "**Insurance Company:** %s\n", orText(c.InsuranceInfo, "Not specified"))
	fmt.Fprintf(b, "**Policy Limits:** %s\n", orText(c.PolicyLimits, "Not disclosed"))

	b.WriteString("\n### Liability Information\n")
	fmt.Fprintf(b, "%s\n\n", orText(c.LiabilityInfo, "Not specified"))
}

func (a *Assembler) writeMissingInfo(b *strings.Builder, missing []string) {
	b.WriteString("## Missing Info / Follow-Ups Needed\n\n")
	if len(missing) == 0 {
		b.WriteString("• All essential information appears to be present\n\n")
		return
	}
	for _, item := range missing {
		fmt.Fprintf(b, "%s\n", item)
	}
	b.WriteString("\n")
}

func (a *Assembler) writeLocation(b *strings.Builder, loc model.LocationAssessment) {
	b.WriteString("## Location Risk Analysis\n\n")
	if loc == (model.LocationAssessment{}) {
		b.WriteString("Not available (no accident location on file)\n\n")
		return
	}
	fmt.Fprintf(b, "**Accident Location:** %s, %s\n", orText(loc.City, "Unknown"), orText(loc.State, "Unknown"))
	fmt.Fprintf(b, "**Political Leaning:** %s\n", orText(loc.PoliticalLeaning, "Unknown"))
	fmt.Fprintf(b, "**Tort Environment:** %s\n", orText(loc.TortEnvironment, "Unknown"))
	fmt.Fprintf(b, "**Risk Level:** %s\n\n", orText(loc.RiskLevel, "Unknown"))
	fmt.Fprintf(b, "**Analysis Notes:**\n%s\n\n", orText(loc.Notes, "No detailed analysis available"))
}

func (a *Assembler) writeParty(b *strings.Builder, p model.PartyVerification) {
	b.WriteString("## Attorney Verification\n\n")
	if p.Name == "" {
		b.WriteString("Not available (no attorney on file)\n\n")
		return
	}
	fmt.Fprintf(b, "**Name:** %s\n", p.Name)
	fmt.Fprintf(b, "**Estimated Bar Status:** %s\n", orText(p.BarStatus, "Unknown"))
	fmt.Fprintf(b, "**Email Domain:** %s\n", boolLabel(p.EmailVerified, "Professional", "Generic/Unknown"))
	fmt.Fprintf(b, "**Firm Verification:** %s\n", boolLabel(p.FirmVerified, "Professional Domain", "Generic Email Domain"))
	if p.WebsiteReachable != nil {
		fmt.Fprintf(b, "**Firm Website:** %s\n", boolLabel(*p.WebsiteReachable, "Reachable", "Unreachable"))
	}
	fmt.Fprintf(b, "\n**Verification Notes:**\n%s\n\n", orText(p.Notes, "No verification performed"))
}

func (a *Assembler) writeSubReports(b *strings.Builder, reports []model.IncidentSubReport) {
	b.WriteString("## Police Report Data\n\n")
	if len(reports) == 0 {
		b.WriteString("No police report data extracted\n\n")
		return
	}

	for i, r := range reports {
		if len(reports) > 1 {
			fmt.Fprintf(b, "### Report %d of %d\n\n", i+1, len(reports))
		}
		fmt.Fprintf(b, "**Report Number:** %s\n", orText(r.ReportNumber, "Not specified"))
		fmt.Fprintf(b, "**Report Date:** %s\n", orText(r.ReportDate, "Not specified"))
		fmt.Fprintf(b, "**Incident Date:** %s\n", orText(r.IncidentDate, "Not specified"))
		fmt.Fprintf(b, "**Incident Time:** %s\n", orText(r.IncidentTime, "Not specified"))
		fmt.Fprintf(b, "**Location:** %s\n\n", orText(r.Location, "Not specified"))

		b.WriteString("**Officers Involved:**\n")
		writeList(b, r.Officers, "No officers specified")
		b.WriteString("\n**Parties Involved:**\n")
		writeList(b, r.PartiesInvolved, "No parties specified")
		b.WriteString("\n**Vehicles Involved:**\n")
		writeList(b, r.Vehicles, "No vehicles specified")
		b.WriteString("\n**Violations:**\n")
		writeList(b, r.Violations, "No violations specified")
		b.WriteString("\n**Injuries Reported:**\n")
		writeList(b, r.InjuriesReported, "No injuries reported")
		b.WriteString("\n**Witness Statements:**\n")
		writeList(b, r.WitnessStatements, "No witness statements")

		fmt.Fprintf(b, "\n**Narrative:**\n%s\n\n", orText(r.Narrative, "No narrative provided"))
		fmt.Fprintf(b, "**Weather Conditions:** %s\n", orText(r.WeatherConditions, "Not specified"))
		fmt.Fprintf(b, "**Road Conditions:** %s\n", orText(r.RoadConditions, "Not specified"))
		fmt.Fprintf(b, "**Traffic Control:** %s\n", orText(r.TrafficControl, "Not specified"))
		fmt.Fprintf(b, "**Damage Assessment:** %s\n", orText(r.DamageAssessment, "Not specified"))
		fmt.Fprintf(b, "**Fault Determination:** %s\n\n", orText(r.FaultDetermination, "Not specified"))
	}
}

func (a *Assembler) writeConsolidated(b *strings.Builder, c *model.ConsolidatedAnalysis) {
	b.WriteString("## Multi-Report Analysis\n\n")
	if c == nil {
		b.WriteString("Not performed (single report)\n\n")
		return
	}

	fmt.Fprintf(b, "**Reports Analyzed:** %d\n", c.ReportCount)
	if len(c.ReportNumbers) > 0 {
		fmt.Fprintf(b, "**Report Numbers:** %s\n", strings.Join(c.ReportNumbers, ", "))
	}
	fmt.Fprintf(b, "**Consistency Score:** %s\n\n", c.ConsistencyScore)

	fmt.Fprintf(b, "%s\n\n", orText(c.Narrative, "No analysis narrative available"))

	b.WriteString("**Key Findings:**\n")
	writeList(b, c.KeyFindings, "No key findings")
	b.WriteString("\n**Recommendations:**\n")
	writeList(b, c.Recommendations, "No recommendations")
	b.WriteString("\n")
}

func writeList(b *strings.Builder, items []string, placeholder string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s\n", placeholder)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

func orText(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func boolLabel(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
