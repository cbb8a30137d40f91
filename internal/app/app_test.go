package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		RepositoryDriver:   config.RepositoryMemory,
		MetricsEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
		CrawlMaxWorkers:    2,
		CrawlMaxAthleteAge: 45,
		InternalJobToken:   "secret",
	}
}

func TestBuild_MemoryDriverServesHTTP(t *testing.T) {
	t.Parallel()

	components, err := Build(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer components.Close()

	srv, err := NewHTTPServer(memoryConfig(), components, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected prometheus output from /metrics, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/athletes/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown athlete, got %d", rec.Code)
	}
}

func TestBuild_RejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RepositoryDriver = "sqlite"
	if _, err := Build(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown repository driver")
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	components, err := Build(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(cfg, components, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
