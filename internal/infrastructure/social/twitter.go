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
	"github.com/mikekeda/athletes/internal/usecase"
)

const defaultTwitterBaseURL = "https://api.twitter.com/1.1"

type TwitterConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	BearerToken    string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *observability.Metrics
}

type TwitterClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
	metrics    *observability.Metrics
}

func NewTwitterClient(cfg TwitterConfig) *TwitterClient {
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
		baseURL = defaultTwitterBaseURL
	}
	return &TwitterClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.BearerToken),
		breaker:    resilience.NewCircuitBreaker("twitter", cfg.CircuitBreaker, cfg.Metrics.BreakerTransition),
		logger:     logger.Named("social.twitter"),
		metrics:    cfg.Metrics,
	}
}

// LookupProfile returns the first users/search hit for "<name> <category>",
// or nil when there is none.
func (c *TwitterClient) LookupProfile(ctx context.Context, name, category string) (*usecase.ExternalTwitterProfile, error) {
	query := strings.TrimSpace(strings.TrimSpace(name) + " " + strings.TrimSpace(category))
	if query == "" {
		return nil, nil
	}
	values := url.Values{}
	values.Set("count", "1")
	values.Set("q", query)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/users/search.json?"+values.Encode(), nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build twitter request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("accept", "application/json")

	var users []map[string]any
	if err := getJSON(ctx, c.httpClient, c.breaker, req, &users); err != nil {
		if crerr.Is(err, errNoContent) {
			c.logger.WarnContext(ctx, "twitter lookup failed", "name", name, "error", err)
			c.metrics.ObserveSocialLookup("twitter", "unavailable")
			return nil, nil
		}
		c.metrics.ObserveSocialLookup("twitter", "error")
		return nil, crerr.Wrapf(err, "twitter users search %q", query)
	}
	if len(users) == 0 {
		c.metrics.ObserveSocialLookup("twitter", "miss")
		return nil, nil
	}

	user := users[0]
	profile := &usecase.ExternalTwitterProfile{
		ID:             stringField(user, "id_str"),
		ScreenName:     stringField(user, "screen_name"),
		FollowersCount: intField(user, "followers_count"),
		Raw:            user,
	}
	c.metrics.ObserveSocialLookup("twitter", "hit")
	return profile, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
