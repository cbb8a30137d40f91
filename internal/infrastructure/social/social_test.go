package social

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTwitterClient_LookupProfile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("missing bearer token")
		}
		switch r.URL.Query().Get("q") {
		case "Joe Smith Football":
			_, _ = w.Write([]byte(`[{"id_str":"42","screen_name":"joesmith","followers_count":1500}]`))
		case "Rate Limited Football":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := NewTwitterClient(TwitterConfig{BaseURL: server.URL, BearerToken: "token"})

	profile, err := client.LookupProfile(t.Context(), "Joe Smith", "Football")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil || profile.FollowersCount != 1500 || profile.ID != "42" || profile.Raw["screen_name"] != "joesmith" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	profile, err = client.LookupProfile(t.Context(), "Nobody Here", "Football")
	if err != nil || profile != nil {
		t.Fatalf("expected miss, got %+v %v", profile, err)
	}

	profile, err = client.LookupProfile(t.Context(), "Rate Limited", "Football")
	if err != nil || profile != nil {
		t.Fatalf("non-200 must be no data, got %+v %v", profile, err)
	}
}

func TestYouTubeClient_SearchAndStats(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "yt-key" {
			t.Errorf("missing api key")
		}
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("type") != "channel" || r.URL.Query().Get("regionCode") != "GB" {
				t.Errorf("unexpected search query %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"items":[{"id":{"channelId":"UC123"}}]}`))
		case "/channels":
			_, _ = w.Write([]byte(`{"items":[{"snippet":{"title":"Joe"},"statistics":{"subscriberCount":"99"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewYouTubeClient(YouTubeConfig{BaseURL: server.URL, APIKey: "yt-key"})

	channelID, ok, err := client.SearchChannel(t.Context(), "Joe Smith", "GB")
	if err != nil || !ok || channelID != "UC123" {
		t.Fatalf("unexpected search result %q %v %v", channelID, ok, err)
	}

	stats, err := client.ChannelStats(t.Context(), channelID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats["subscriberCount"] != "99" || stats["title"] != "Joe" {
		t.Fatalf("expected merged statistics and snippet, got %v", stats)
	}
}
