package intake

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkarpov/claimsift/internal/assess"
	"github.com/pkarpov/claimsift/internal/consolidate"
	"github.com/pkarpov/claimsift/internal/extract"
	"github.com/pkarpov/claimsift/internal/ledger"
	"github.com/pkarpov/claimsift/internal/model"
	"github.com/pkarpov/claimsift/internal/report"
)

// scriptedProvider routes on the instruction text so call order does not
// matter.
type scriptedProvider struct{}

func (p *scriptedProvider) Name() string                         { return "scripted" }
func (p *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *scriptedProvider) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	switch {
	case strings.Contains(instructions, "extraction specialist"):
		return `{"client_name": "John Smith", "date_of_loss": "2024-03-15",
 "accident_type": "auto accident", "accident_location": "Miami, FL",
 "attorney_name": "Jane Roe", "attorney_email": "jane@levinelaw.com",
 "report_number": "PR-1", "incident_date": "2024-03-15",
 "location": "Main St and 5th Ave", "fault_determination": "Driver 2 at fault"}`, nil
	case strings.Contains(instructions, "synthesizing"):
		return "## Key Evidence\n- both reports agree\n\n## Recommendations\n- request footage", nil
	case strings.Contains(instructions, "underwriting analyst"):
		return "• Policy limits not disclosed", nil
	case strings.Contains(instructions, "geographic risk"):
		return "Miami-Dade is a tort-hostile environment for plaintiffs.", nil
	case strings.Contains(instructions, "attorney background"):
		return "The attorney and firm appear legitimate.", nil
	}
	return "", errors.New("unexpected instructions")
}

type fakeCourier struct {
	reports    []string
	notices    []error
	failReport bool
}

func (c *fakeCourier) DeliverReport(report string, item model.InboundItem, attachmentCount int) error {
	if c.failReport {
		return errors.New("smtp unavailable")
	}
	c.reports = append(c.reports, report)
	return nil
}

func (c *fakeCourier) DeliverErrorNotice(item model.InboundItem, processErr error) error {
	c.notices = append(c.notices, processErr)
	return nil
}

func newTestController(t *testing.T, courier *fakeCourier) (*Controller, *ledger.Ledger) {
	t.Helper()

	led, err := ledger.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = led.Close() })

	provider := &scriptedProvider{}
	controller := NewController(ControllerConfig{
		Ledger:       led,
		Extractor:    extract.NewExtractor(provider),
		Consolidator: consolidate.NewConsolidator(provider),
		Location:     assess.NewLocationAssessor(provider),
		Attorney:     assess.NewAttorneyVerifier(provider, nil),
		Assembler:    report.NewAssembler(),
		Courier:      courier,
	})
	return controller, led
}

func reportBody() string {
	filler := strings.Repeat("vehicle one proceeded northbound through the intersection at speed ", 10)
	return "Please review this personal injury claim with the attached police report data.\n" +
		"POLICE REPORT #PR-1\n" + filler + "\n" +
		"INCIDENT REPORT #PR-2\n" + filler
}

func legalItem(id string) model.InboundItem {
	return model.InboundItem{
		ID:      id,
		Subject: "New auto accident case submission",
		Sender:  "jane@levinelaw.com",
		Date:    "2024-03-20",
		Body:    reportBody(),
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	courier := &fakeCourier{}
	controller, led := newTestController(t, courier)

	disposition, err := controller.Process(context.Background(), legalItem("msg-e2e"))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != model.DispositionDelivered {
		t.Fatalf("Expected delivered, got %q", disposition)
	}
	if len(courier.reports) != 1 {
		t.Fatalf("Expected 1 delivered report, got %d", len(courier.reports))
	}

	out := courier.reports[0]
	for _, want := range []string{
		"## Case Summary (Extracted from Submission)",
		"## Missing Info / Follow-Ups Needed",
		"## Location Risk Analysis",
		"## Attorney Verification",
		"## Police Report Data",
		"## Multi-Report Analysis",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing section %q", want)
		}
	}

	if !strings.Contains(out, "**Tort Environment:** "+model.TortHostile) {
		t.Error("Expected Tort-Hostile classification in report")
	}
	if !strings.Contains(out, "**Risk Level:** "+model.RiskLow) {
		t.Error("Expected Low risk in report")
	}
	if !strings.Contains(out, "### Report 1 of 2") {
		t.Error("Expected two segmented sub-reports in report")
	}
	if !strings.Contains(out, "High - All key fields are consistent") {
		t.Error("Expected High consistency score for identical sub-reports")
	}

	rec, err := led.Record("msg-e2e")
	if err != nil || rec == nil {
		t.Fatalf("Expected ledger record, got %v, %v", rec, err)
	}
	if rec.Disposition != model.DispositionDelivered {
		t.Errorf("Expected delivered disposition in ledger, got %q", rec.Disposition)
	}
}

func TestProcess_SkipsAlreadyProcessed(t *testing.T) {
	courier := &fakeCourier{}
	controller, led := newTestController(t, courier)

	if err := led.Mark("msg-dup", model.DispositionDelivered); err != nil {
		t.Fatal(err)
	}

	disposition, err := controller.Process(context.Background(), legalItem("msg-dup"))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != "" {
		t.Errorf("Expected empty disposition for a skip, got %q", disposition)
	}
	if len(courier.reports) != 0 || len(courier.notices) != 0 {
		t.Error("Expected no deliveries for an already-processed item")
	}
}

func TestProcess_FiltersNonLegalItem(t *testing.T) {
	courier := &fakeCourier{}
	controller, led := newTestController(t, courier)

	item := model.InboundItem{
		ID:      "msg-news",
		Subject: "Weekly digest",
		Sender:  "news@updates.example.com",
		Body:    "Top stories this week.",
	}

	disposition, err := controller.Process(context.Background(), item)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != model.DispositionFiltered {
		t.Errorf("Expected filtered, got %q", disposition)
	}
	if len(courier.reports) != 0 {
		t.Error("Expected no report for a filtered item")
	}

	seen, err := led.Seen("msg-news")
	if err != nil || !seen {
		t.Errorf("Expected filtered item to be marked in ledger, got %v, %v", seen, err)
	}
}

func TestProcess_DeliveryFailureRecorded(t *testing.T) {
	courier := &fakeCourier{failReport: true}
	controller, led := newTestController(t, courier)

	disposition, err := controller.Process(context.Background(), legalItem("msg-fail"))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != model.DispositionDeliveryFailed {
		t.Errorf("Expected delivery_failed, got %q", disposition)
	}

	rec, err := led.Record("msg-fail")
	if err != nil || rec == nil {
		t.Fatalf("Expected ledger record, got %v, %v", rec, err)
	}
	if rec.Disposition != model.DispositionDeliveryFailed {
		t.Errorf("Expected delivery_failed in ledger, got %q", rec.Disposition)
	}
	if len(courier.notices) != 0 {
		t.Error("Expected no error notice for a delivery failure")
	}
}

func TestProcess_EmptyItemSendsErrorNotice(t *testing.T) {
	courier := &fakeCourier{}
	controller, led := newTestController(t, courier)

	item := model.InboundItem{
		ID:      "msg-empty",
		Subject: "personal injury claim",
		Sender:  "jane@levinelaw.com",
		Body:    "",
	}

	disposition, err := controller.Process(context.Background(), item)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != model.DispositionErrored {
		t.Errorf("Expected errored, got %q", disposition)
	}
	if len(courier.notices) != 1 {
		t.Fatalf("Expected 1 error notice, got %d", len(courier.notices))
	}
	if !strings.Contains(courier.notices[0].Error(), "no readable content") {
		t.Errorf("Expected no-content error, got %v", courier.notices[0])
	}

	seen, err := led.Seen("msg-empty")
	if err != nil || !seen {
		t.Errorf("Expected errored item to be marked, got %v, %v", seen, err)
	}
}

func TestProcess_SingleReportSkipsConsolidation(t *testing.T) {
	courier := &fakeCourier{}
	controller, _ := newTestController(t, courier)

	filler := strings.Repeat("vehicle one proceeded northbound through the intersection at speed ", 10)
	item := model.InboundItem{
		ID:      "msg-single",
		Subject: "New auto accident case submission",
		Sender:  "jane@levinelaw.com",
		Body:    "POLICE REPORT #PR-1\n" + filler,
	}

	disposition, err := controller.Process(context.Background(), item)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if disposition != model.DispositionDelivered {
		t.Fatalf("Expected delivered, got %q", disposition)
	}

	out := courier.reports[0]
	if !strings.Contains(out, "Not performed (single report)") {
		t.Error("Expected single-report placeholder in multi-report section")
	}
}
