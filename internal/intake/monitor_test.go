package intake

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkarpov/claimsift/internal/model"
)

type fakeSource struct {
	items []model.InboundItem
	err   error
	lists int32
}

func (s *fakeSource) ListUnseen(ctx context.Context) ([]model.InboundItem, error) {
	atomic.AddInt32(&s.lists, 1)
	return s.items, s.err
}

func TestMonitor_ProcessesItemsThenStops(t *testing.T) {
	courier := &fakeCourier{}
	controller, _ := newTestController(t, courier)

	source := &fakeSource{items: []model.InboundItem{legalItem("msg-loop")}}
	monitor := NewMonitor(source, controller, 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := monitor.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline error from cancelled run, got %v", err)
	}

	if len(courier.reports) != 1 {
		t.Errorf("Expected exactly 1 delivery despite repeated polls, got %d", len(courier.reports))
	}
	if atomic.LoadInt32(&source.lists) < 2 {
		t.Errorf("Expected the loop to poll more than once, got %d", source.lists)
	}
}

func TestMonitor_SourceFailureBacksOffAndContinues(t *testing.T) {
	courier := &fakeCourier{}
	controller, _ := newTestController(t, courier)

	source := &fakeSource{err: errors.New("mailbox unreachable")}
	monitor := NewMonitor(source, controller, 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := monitor.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline error, got %v", err)
	}

	if atomic.LoadInt32(&source.lists) < 2 {
		t.Errorf("Expected listing retries after failure, got %d", source.lists)
	}
}
