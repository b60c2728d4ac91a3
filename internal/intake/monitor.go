package intake

import (
	"context"
	"log"
	"time"

	"github.com/pkarpov/claimsift/internal/mailbox"
)

// Monitor polls the inbound source and feeds items to the controller one at
// a time, strictly sequentially. A failing item never stops the loop; a
// failing source listing backs off and retries.
type Monitor struct {
	source     mailbox.Source
	controller *Controller

	pollInterval time.Duration
	errorBackoff time.Duration
}

// NewMonitor creates a new intake monitor.
func NewMonitor(source mailbox.Source, controller *Controller, pollInterval, errorBackoff time.Duration) *Monitor {
	return &Monitor{
		source:       source,
		controller:   controller,
		pollInterval: pollInterval,
		errorBackoff: errorBackoff,
	}
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	log.Printf("intake monitor started (poll interval %s)", m.pollInterval)

	for {
		wait := m.pollInterval
		if err := m.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("inbound listing failed: %v (retrying in %s)", err, m.errorBackoff)
			wait = m.errorBackoff
		}

		select {
		case <-ctx.Done():
			log.Printf("intake monitor stopping: %v", ctx.Err())
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// poll lists unseen items and processes each in order.
func (m *Monitor) poll(ctx context.Context) error {
	items, err := m.source.ListUnseen(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		disposition, err := m.controller.Process(ctx, item)
		if err != nil {
			log.Printf("item %s failed: %v", item.ID, err)
			continue
		}
		if disposition != "" {
			log.Printf("item %s processed: %s", item.ID, disposition)
		}
	}

	return nil
}
