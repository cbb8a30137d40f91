package social

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/mikekeda/athletes/internal/observability"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/platform/resilience"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

type YouTubeConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *observability.Metrics
}

type YouTubeClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
	metrics    *observability.Metrics
}

type searchEnvelope struct {
	Items []struct {
		ID struct {
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
}

type channelsEnvelope struct {
	Items []struct {
		Snippet    map[string]any `json:"snippet"`
		Statistics map[string]any `json:"statistics"`
	} `json:"items"`
}

func NewYouTubeClient(cfg YouTubeConfig) *YouTubeClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient(cfg.Timeout)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	return &YouTubeClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		breaker:    resilience.NewCircuitBreaker("youtube", cfg.CircuitBreaker, cfg.Metrics.BreakerTransition),
		logger:     logger.Named("social.youtube"),
		metrics:    cfg.Metrics,
	}
}

// SearchChannel returns the id of the first channel matching query.
func (c *YouTubeClient) SearchChannel(ctx context.Context, query, regionCode string) (string, bool, error) {
	values := url.Values{}
	values.Set("maxResults", "1")
	values.Set("type", "channel")
	values.Set("part", "snippet")
	values.Set("q", strings.TrimSpace(query))
	if region := strings.TrimSpace(regionCode); region != "" {
		values.Set("regionCode", region)
	}

	var envelope searchEnvelope
	if err := c.get(ctx, "/search", values, &envelope); err != nil {
		if crerr.Is(err, errNoContent) {
			c.logger.WarnContext(ctx, "youtube search failed", "query", query, "error", err)
			c.metrics.ObserveSocialLookup("youtube", "unavailable")
			return "", false, nil
		}
		c.metrics.ObserveSocialLookup("youtube", "error")
		return "", false, crerr.Wrapf(err, "youtube search %q", query)
	}
	if len(envelope.Items) == 0 || envelope.Items[0].ID.ChannelID == "" {
		c.metrics.ObserveSocialLookup("youtube", "miss")
		return "", false, nil
	}
	return envelope.Items[0].ID.ChannelID, true, nil
}

// ChannelStats returns the channel statistics merged with its snippet.
func (c *YouTubeClient) ChannelStats(ctx context.Context, channelID string) (map[string]any, error) {
	values := url.Values{}
	values.Set("id", strings.TrimSpace(channelID))
	values.Set("part", "snippet,statistics")

	var envelope channelsEnvelope
	if err := c.get(ctx, "/channels", values, &envelope); err != nil {
		if crerr.Is(err, errNoContent) {
			c.metrics.ObserveSocialLookup("youtube", "unavailable")
			return nil, nil
		}
		c.metrics.ObserveSocialLookup("youtube", "error")
		return nil, crerr.Wrapf(err, "youtube channel %s", channelID)
	}
	if len(envelope.Items) == 0 {
		c.metrics.ObserveSocialLookup("youtube", "miss")
		return nil, nil
	}

	item := envelope.Items[0]
	out := make(map[string]any, len(item.Statistics)+len(item.Snippet))
	for k, v := range item.Statistics {
		out[k] = v
	}
	for k, v := range item.Snippet {
		out[k] = v
	}
	c.metrics.ObserveSocialLookup("youtube", "hit")
	return out, nil
}

func (c *YouTubeClient) get(ctx context.Context, path string, values url.Values, target any) error {
	values.Set("key", c.apiKey)
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return crerr.Wrap(err, "build youtube request")
	}
	req.Header.Set("accept", "application/json")
	return getJSON(ctx, c.httpClient, c.breaker, req, target)
}
