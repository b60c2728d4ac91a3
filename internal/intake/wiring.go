package intake

import (
	"fmt"
	"time"

	"github.com/pkarpov/claimsift/internal/assess"
	"github.com/pkarpov/claimsift/internal/cache"
	"github.com/pkarpov/claimsift/internal/consolidate"
	"github.com/pkarpov/claimsift/internal/extract"
	"github.com/pkarpov/claimsift/internal/ledger"
	"github.com/pkarpov/claimsift/internal/llm"
	"github.com/pkarpov/claimsift/internal/mailbox"
	"github.com/pkarpov/claimsift/internal/model"
	"github.com/pkarpov/claimsift/internal/report"
)

// Pipeline bundles a fully wired controller and monitor plus the resources
// that need explicit shutdown.
type Pipeline struct {
	Controller *Controller
	Monitor    *Monitor

	ledger *ledger.Ledger
}

// NewPipeline wires the complete intake pipeline from configuration. The
// text-analysis provider is optional; with none configured, extraction runs
// on deterministic fallbacks only.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, err
	}

	var probe *assess.WebsiteProbe
	if cfg.Probe.Enabled {
		probe = assess.NewWebsiteProbe(cfg.Probe.Timeout, cfg.Probe.UserAgent)
	}

	controller := NewController(ControllerConfig{
		Ledger:             led,
		Extractor:          extract.NewExtractor(provider),
		Consolidator:       consolidate.NewConsolidator(provider),
		Location:           assess.NewLocationAssessor(provider),
		Attorney:           assess.NewAttorneyVerifier(provider, probe),
		Assembler:          report.NewAssembler(),
		Courier:            mailbox.NewSMTPCourier(cfg.SMTP),
		Artifacts:          cache.NewMemoryCache(time.Hour, 10*time.Minute),
		MaxAttachmentBytes: cfg.Pipeline.MaxAttachmentBytes,
		Verbose:            cfg.Output.Verbose,
	})

	source := mailbox.NewDirSource(cfg.Mail.SpoolDir)
	monitor := NewMonitor(source, controller, cfg.Pipeline.PollInterval, cfg.Pipeline.ErrorBackoff)

	return &Pipeline{
		Controller: controller,
		Monitor:    monitor,
		ledger:     led,
	}, nil
}

// Close releases the pipeline's resources.
func (p *Pipeline) Close() error {
	return p.ledger.Close()
}

// buildProvider constructs the provider chain: base provider, rate limiter,
// response cache. Returns nil when no provider is configured.
func buildProvider(cfg *model.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure provider: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	if cfg.LLM.RateRPS > 0 {
		provider = llm.Throttled(provider, cfg.LLM.RateRPS, cfg.LLM.RateBurst)
	}
	if cfg.Cache.Enabled {
		responses := cache.NewLayeredCache(cfg.Cache.ResponseTTL, cfg.Cache.Dir, cfg.Cache.ResponseTTL)
		provider = llm.Cached(provider, responses, cfg.Cache.ResponseTTL)
	}

	return provider, nil
}
