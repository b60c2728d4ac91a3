package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pkarpov/claimsift/internal/assess"
	"github.com/pkarpov/claimsift/internal/cache"
	"github.com/pkarpov/claimsift/internal/consolidate"
	"github.com/pkarpov/claimsift/internal/docext"
	"github.com/pkarpov/claimsift/internal/extract"
	"github.com/pkarpov/claimsift/internal/ledger"
	"github.com/pkarpov/claimsift/internal/mailbox"
	"github.com/pkarpov/claimsift/internal/model"
	"github.com/pkarpov/claimsift/internal/report"
)

// Controller runs the intake state machine for one item at a time. Items are
// processed at most once: the ledger is consulted before any work and marked
// exactly once on every terminal path. Report delivery failures do not
// trigger reprocessing; the disposition records the failure instead.
type Controller struct {
	ledger       *ledger.Ledger
	extractor    *extract.Extractor
	consolidator *consolidate.Consolidator
	location     *assess.LocationAssessor
	attorney     *assess.AttorneyVerifier
	assembler    *report.Assembler
	courier      mailbox.Courier

	// artifacts holds per-item intermediates (document text, extracted
	// records) while the item is in flight. Entries are purged on every
	// exit path.
	artifacts cache.Cache

	maxAttachmentBytes int64
	verbose            bool
}

// ControllerConfig bundles the controller's collaborators.
type ControllerConfig struct {
	Ledger       *ledger.Ledger
	Extractor    *extract.Extractor
	Consolidator *consolidate.Consolidator
	Location     *assess.LocationAssessor
	Attorney     *assess.AttorneyVerifier
	Assembler    *report.Assembler
	Courier      mailbox.Courier
	Artifacts    cache.Cache

	MaxAttachmentBytes int64
	Verbose            bool
}

// NewController creates a new intake controller.
func NewController(cfg ControllerConfig) *Controller {
	artifacts := cfg.Artifacts
	if artifacts == nil {
		artifacts = cache.NewMemoryCache(time.Hour, 10*time.Minute)
	}
	return &Controller{
		ledger:             cfg.Ledger,
		extractor:          cfg.Extractor,
		consolidator:       cfg.Consolidator,
		location:           cfg.Location,
		attorney:           cfg.Attorney,
		assembler:          cfg.Assembler,
		courier:            cfg.Courier,
		artifacts:          artifacts,
		maxAttachmentBytes: cfg.MaxAttachmentBytes,
		verbose:            cfg.Verbose,
	}
}

// Process runs one item through the state machine and returns its terminal
// disposition. An empty disposition means the item was already processed and
// skipped without work.
func (c *Controller) Process(ctx context.Context, item model.InboundItem) (model.Disposition, error) {
	seen, err := c.ledger.Seen(item.ID)
	if err != nil {
		return "", fmt.Errorf("ledger lookup for %s: %w", item.ID, err)
	}
	if seen {
		c.logf("item %s already processed, skipping", item.ID)
		return "", nil
	}

	c.transition(item.ID, model.StateReceived)

	defer c.purgeArtifacts(item.ID)

	if !IsLegalCase(item.Subject, item.Body, item.Sender) {
		c.transition(item.ID, model.StateFilteredOut)
		if err := c.ledger.Mark(item.ID, model.DispositionFiltered); err != nil {
			return "", err
		}
		return model.DispositionFiltered, nil
	}
	c.transition(item.ID, model.StateAccepted)

	reportText, pdfCount, procErr := c.analyze(ctx, item)
	if procErr != nil {
		log.Printf("processing failed for item %s: %v", item.ID, procErr)
		if err := c.courier.DeliverErrorNotice(item, procErr); err != nil {
			log.Printf("error notice delivery failed for item %s: %v", item.ID, err)
		}
		if err := c.ledger.Mark(item.ID, model.DispositionErrored); err != nil {
			return "", err
		}
		return model.DispositionErrored, nil
	}

	c.transition(item.ID, model.StateReporting)

	disposition := model.DispositionDelivered
	state := model.StateDelivered
	if err := c.courier.DeliverReport(reportText, item, pdfCount); err != nil {
		log.Printf("report delivery failed for item %s: %v", item.ID, err)
		disposition = model.DispositionDeliveryFailed
		state = model.StateDeliveryFailed
	}
	c.transition(item.ID, state)

	if err := c.ledger.Mark(item.ID, disposition); err != nil {
		return "", err
	}
	c.transition(item.ID, model.StateMarked)

	return disposition, nil
}

// analyze runs extraction, enrichment and assembly. It degrades rather than
// fails wherever possible; an error here means no report could be produced
// at all.
func (c *Controller) analyze(ctx context.Context, item model.InboundItem) (string, int, error) {
	c.transition(item.ID, model.StateExtracting)

	emailBody := item.Body
	if strings.TrimSpace(emailBody) == "" && item.HTMLBody != "" {
		text, err := docext.FromHTML(item.HTMLBody)
		if err != nil {
			log.Printf("html body conversion failed for item %s: %v", item.ID, err)
		} else {
			emailBody = text
		}
	}

	docText, pdfCount := c.attachmentText(item)

	combined := docText
	if combined == "" {
		combined = emailBody
	}
	if strings.TrimSpace(combined) == "" {
		return "", 0, fmt.Errorf("no readable content in item")
	}
	c.stash(item.ID, "doctext", []byte(combined))

	caseRec := c.extractor.ExtractCase(ctx, combined, emailBody)
	if data, err := json.Marshal(caseRec); err == nil {
		c.stash(item.ID, "case", data)
	}

	var subReports []model.IncidentSubReport
	if extract.HasReportMarkers(combined) {
		for _, segment := range extract.Segment(combined) {
			subReports = append(subReports, c.extractor.ExtractSubReport(ctx, segment))
		}
	}

	c.transition(item.ID, model.StateAnalyzing)

	var consolidated *model.ConsolidatedAnalysis
	if len(subReports) >= 2 {
		analysis := c.consolidator.Consolidate(ctx, caseRec, subReports)
		consolidated = &analysis
	}

	missing := c.extractor.MissingInformation(ctx, caseRec)
	location := c.location.Assess(ctx, caseRec.AccidentLocation)
	party := c.attorney.Verify(ctx, caseRec.AttorneyName, caseRec.AttorneyEmail, "")

	reportText := c.assembler.Assemble(report.AssembleInput{
		Case:            caseRec,
		MissingInfo:     missing,
		Location:        location,
		Party:           party,
		SubReports:      subReports,
		Consolidated:    consolidated,
		OriginalSubject: item.Subject,
		OriginalSender:  item.Sender,
	})

	return reportText, pdfCount, nil
}

// attachmentText extracts text from all readable PDF attachments. Oversized
// or unreadable attachments are skipped, not fatal.
func (c *Controller) attachmentText(item model.InboundItem) (string, int) {
	var parts []string
	count := 0

	for _, att := range item.Attachments {
		if !strings.HasSuffix(strings.ToLower(att.Filename), ".pdf") {
			continue
		}
		count++

		if c.maxAttachmentBytes > 0 && int64(len(att.Content)) > c.maxAttachmentBytes {
			log.Printf("attachment %s on item %s exceeds %d bytes, skipping",
				att.Filename, item.ID, c.maxAttachmentBytes)
			continue
		}

		text, err := docext.FromPDF(att.Content)
		if err != nil {
			log.Printf("pdf extraction failed for %s on item %s: %v", att.Filename, item.ID, err)
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n"), count
}

func (c *Controller) stash(itemID, kind string, data []byte) {
	_ = c.artifacts.Set(artifactKey(itemID, kind), data, time.Hour)
}

func (c *Controller) purgeArtifacts(itemID string) {
	for _, kind := range []string{"doctext", "case"} {
		_ = c.artifacts.Delete(artifactKey(itemID, kind))
	}
}

func artifactKey(itemID, kind string) string {
	return cache.Key("artifact:" + itemID + ":" + kind)
}

func (c *Controller) transition(itemID string, state model.ItemState) {
	if c.verbose {
		log.Printf("item %s -> %s", itemID, state)
	}
}

func (c *Controller) logf(format string, args ...any) {
	if c.verbose {
		log.Printf(format, args...)
	}
}
