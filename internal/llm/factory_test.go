package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkarpov/claimsift/internal/cache"
)

type stubProvider struct {
	resp  string
	err   error
	calls int
}

func (s *stubProvider) Name() string                         { return "stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (s *stubProvider) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	s.calls++
	return s.resp, s.err
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when analysis is disabled")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "grok"})
	if err == nil {
		t.Fatal("Expected an error for unknown provider")
	}
	if !strings.Contains(err.Error(), "unknown text-analysis provider") {
		t.Errorf("Unexpected error text: %v", err)
	}
}

func TestNewProvider_OpenAI(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Expected openai, got %q", provider.Name())
	}
}

func TestNewProvider_ClaudeAlias(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "claude", APIKey: "sk-ant-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %q", provider.Name())
	}
}

func TestNewProvider_CaseInsensitive(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "OpenAI", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Expected openai, got %q", provider.Name())
	}
}

func TestCached_SecondCallHitsCache(t *testing.T) {
	inner := &stubProvider{resp: "analysis text"}
	provider := Cached(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		got, err := provider.Generate(context.Background(), "instructions", "prompt")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if got != "analysis text" {
			t.Errorf("Expected cached response, got %q", got)
		}
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 inner call, got %d", inner.calls)
	}
}

func TestCached_DifferentPromptsMiss(t *testing.T) {
	inner := &stubProvider{resp: "text"}
	provider := Cached(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	_, _ = provider.Generate(context.Background(), "instructions", "prompt one")
	_, _ = provider.Generate(context.Background(), "instructions", "prompt two")

	if inner.calls != 2 {
		t.Errorf("Expected 2 inner calls for distinct prompts, got %d", inner.calls)
	}
}

func TestCached_FailuresNotCached(t *testing.T) {
	inner := &stubProvider{err: errors.New("boom")}
	provider := Cached(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := provider.Generate(context.Background(), "i", "p"); err == nil {
		t.Fatal("Expected error")
	}

	inner.err = nil
	inner.resp = "recovered"
	got, err := provider.Generate(context.Background(), "i", "p")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("Expected the retry to reach the provider, got %q", got)
	}
	if inner.calls != 2 {
		t.Errorf("Expected 2 inner calls, got %d", inner.calls)
	}
}

func TestThrottled_Delegates(t *testing.T) {
	inner := &stubProvider{resp: "ok"}
	provider := Throttled(inner, 100, 1)

	got, err := provider.Generate(context.Background(), "i", "p")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "ok" || provider.Name() != "stub" {
		t.Errorf("Expected delegation, got %q from %q", got, provider.Name())
	}
}

func TestThrottled_CancelledContext(t *testing.T) {
	inner := &stubProvider{resp: "ok"}
	// Tiny rate so a second call must wait.
	provider := Throttled(inner, 0.001, 1)

	if _, err := provider.Generate(context.Background(), "i", "p"); err != nil {
		t.Fatalf("First call failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := provider.Generate(ctx, "i", "p"); err == nil {
		t.Error("Expected a cancelled context to abort the wait")
	}
}
