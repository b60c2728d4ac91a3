package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCanFetch_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("Claimsift/0.1", 5*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch returned error: %v", err)
	}
	if allowed {
		t.Error("Expected /private/ to be disallowed")
	}

	allowed, err = checker.CanFetch(context.Background(), server.URL+"/public")
	if err != nil {
		t.Fatalf("CanFetch returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected /public to be allowed")
	}
}

func TestCanFetch_EmptyPathTreatedAsRoot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow:\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("Claimsift/0.1", 5*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("CanFetch returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected bare host URL to be allowed")
	}
}

func TestCanFetch_UnreachableRobotsAllowsByDefault(t *testing.T) {
	checker := NewRobotsChecker("Claimsift/0.1", 500*time.Millisecond)

	// Reserved TEST-NET address, nothing listens there.
	allowed, err := checker.CanFetch(context.Background(), "http://192.0.2.1/page")
	if err != nil {
		t.Fatalf("CanFetch returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected fetch to be allowed when robots.txt is unreachable")
	}
}

func TestCanFetch_CachesPerHost(t *testing.T) {
	var fetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(&fetches, 1)
		}
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("Claimsift/0.1", 5*time.Second)

	for i := 0; i < 3; i++ {
		if _, err := checker.CanFetch(context.Background(), server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch returned error: %v", err)
		}
	}

	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", n)
	}
}
