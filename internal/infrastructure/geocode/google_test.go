package geocode

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const berlinResponse = `{"status":"OK","results":[{"address_components":[
{"short_name":"Berlin","long_name":"Berlin","types":["locality","political"]},
{"short_name":"DE","long_name":"Germany","types":["country","political"]}],
"geometry":{"location":{"lat":52.52,"lng":13.405}}}]}`

func TestClient_Geocode(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	var gotComponents atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotComponents.Store(r.URL.Query().Get("components"))
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("api key not sent")
		}
		_, _ = w.Write([]byte(berlinResponse))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "secret"})
	results, err := client.Geocode(t.Context(), "Berlin", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Location.Lat != 52.52 {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[0].Components[1].ShortName != "DE" || results[0].Components[1].Types[0] != "country" {
		t.Fatalf("unexpected components %+v", results[0].Components)
	}
	if gotComponents.Load() != "country:DE" {
		t.Fatalf("region bias not sent: %v", gotComponents.Load())
	}

	if _, err := client.Geocode(t.Context(), "Berlin", "DE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached second lookup, got %d hits", hits.Load())
	}
}

func TestClient_NonOKIsNoData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	results, err := client.Geocode(t.Context(), "Nowhere", "")
	if err != nil || len(results) != 0 {
		t.Fatalf("expected no data without error, got %v %v", results, err)
	}

	results, err = client.Geocode(t.Context(), "  ", "")
	if err != nil || results != nil {
		t.Fatalf("blank address must short-circuit")
	}
}
