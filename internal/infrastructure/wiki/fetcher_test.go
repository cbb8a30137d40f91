package wiki

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikekeda/athletes/internal/platform/resilience"
)

func newTestFetcher(cfg FetcherConfig) *Fetcher {
	f := NewFetcher(cfg)
	f.retry.BaseDelay = time.Millisecond
	f.retry.MaxDelay = 5 * time.Millisecond
	return f
}

func TestFetcher_FetchOK(t *testing.T) {
	t.Parallel()

	var gotAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html><title>Ok - Wikipedia</title></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(FetcherConfig{UserAgent: "test-agent/1.0"})
	page, err := f.Fetch(t.Context(), server.URL+"/wiki/Ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.OK() || len(page.Body) == 0 {
		t.Fatalf("unexpected page %+v", page)
	}
	if gotAgent.Load() != "test-agent/1.0" {
		t.Fatalf("user agent not sent: %v", gotAgent.Load())
	}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(FetcherConfig{MaxRetries: 2})
	page, err := f.Fetch(t.Context(), server.URL+"/wiki/Flaky")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.StatusCode != http.StatusOK || hits.Load() != 2 {
		t.Fatalf("expected success on second attempt, status=%d hits=%d", page.StatusCode, hits.Load())
	}
}

func TestFetcher_NotFoundIsAPageNotAnError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	}))
	defer server.Close()

	f := newTestFetcher(FetcherConfig{MaxRetries: 3})
	page, err := f.Fetch(t.Context(), server.URL+"/wiki/Missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.StatusCode != http.StatusNotFound || hits.Load() != 1 {
		t.Fatalf("404 must not be retried, status=%d hits=%d", page.StatusCode, hits.Load())
	}
}

func TestFetcher_RobotsDisallow(t *testing.T) {
	t.Parallel()

	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		pageHits.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(FetcherConfig{RespectRobots: true})
	page, err := f.Fetch(t.Context(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.StatusCode != http.StatusForbidden || pageHits.Load() != 0 {
		t.Fatalf("disallowed page must not be fetched, status=%d hits=%d", page.StatusCode, pageHits.Load())
	}

	page, err = f.Fetch(t.Context(), server.URL+"/wiki/Public")
	if err != nil || !page.OK() {
		t.Fatalf("allowed page failed: %+v %v", page, err)
	}
}

func TestFetcher_TransportErrorsOpenBreaker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := server.URL + "/wiki/Gone"
	server.Close()

	f := newTestFetcher(FetcherConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})
	if _, err := f.Fetch(t.Context(), target); err == nil {
		t.Fatalf("expected transport error")
	}
	if f.breaker.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected breaker to open, got %s", f.breaker.State())
	}
	if _, err := f.Fetch(t.Context(), "ftp://example.org/x"); err == nil {
		t.Fatalf("expected invalid url error")
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("unexpected delay %v", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Fatalf("unexpected delay %v", got)
	}
}
