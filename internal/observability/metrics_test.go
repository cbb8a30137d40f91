package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mikekeda/athletes/internal/platform/resilience"
)

func TestMetrics_RecordsAndServes(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObservePageFetch(200)
	m.ObservePageFetch(404)
	m.ObservePageFetch(0)
	m.ObserveCrawlOutcome("athlete", "skipped", "TOO_OLD")
	m.ObserveGeocode("hit")
	m.ObserveJob("crawl-team", "ok", 2*time.Second)
	m.BreakerTransition("wiki", resilience.CircuitStateClosed, resilience.CircuitStateOpen)

	if got := testutil.ToFloat64(m.pageFetches.WithLabelValues("2xx")); got != 1 {
		t.Fatalf("expected one 2xx fetch, got %v", got)
	}
	if got := testutil.ToFloat64(m.pageFetches.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected one transport error, got %v", got)
	}
	if got := testutil.ToFloat64(m.crawlOutcomes.WithLabelValues("athlete", "skipped", "TOO_OLD")); got != 1 {
		t.Fatalf("unexpected crawl outcome count %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "athletes_resilience_breaker_transitions_total") {
		t.Fatalf("expected breaker metric in output")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObservePageFetch(500)
	m.ObserveJob("x", "ok", time.Second)
	m.BreakerTransition("wiki", resilience.CircuitStateClosed, resilience.CircuitStateOpen)
	if m.Registry() != nil {
		t.Fatalf("nil metrics must not expose a registry")
	}
}
