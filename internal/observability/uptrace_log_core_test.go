package observability

import (
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/metrics"}) {
		t.Fatalf("expected metrics scrape log to be skipped")
	}
	if shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/athletes/1"}) {
		t.Fatalf("did not expect read api log to be skipped")
	}
	if shouldSkipUptraceLog("qstash publish request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non request log to be skipped")
	}
}

func TestBuildOTelLogAttributes_SortedAndEmpty(t *testing.T) {
	t.Parallel()

	attrs := buildOTelLogAttributes(map[string]any{
		"url":     "https://en.wikipedia.org/wiki/Leeds_Rhinos",
		"attempt": int64(2),
		"payload": nil,
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "attempt" || attrs[0].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "payload" || attrs[1].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "url" || attrs[2].Value.AsString() != "https://en.wikipedia.org/wiki/Leeds_Rhinos" {
		t.Fatalf("unexpected url attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	t.Parallel()

	v := toOTelLogValue(map[string]any{
		"parsed":  11,
		"skipped": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if len(v.AsMap()) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(v.AsMap()))
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration value: %q", got)
	}
}

func TestOTelLogCore_LevelAndWith(t *testing.T) {
	t.Parallel()

	core := newOTelLogCore("test", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled")
	}
	child, ok := core.With([]zapcore.Field{zap.String("component", "wiki.fetcher")}).(*otelLogCore)
	if !ok || len(child.fields) != 1 || len(core.fields) != 0 {
		t.Fatalf("expected With to copy fields onto a clone")
	}
	if err := child.Write(zapcore.Entry{Level: zapcore.WarnLevel, Message: "page unavailable", Time: time.Now()}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
