package geocode

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/observability"
	"github.com/mikekeda/athletes/internal/platform/cache"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/platform/resilience"
	"github.com/mikekeda/athletes/internal/usecase"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *observability.Metrics
}

// Client talks to the Google geocoding API. Lookups are cached per
// address and region, including empty answers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *cache.Store[[]usecase.GeocodeResult]
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
	metrics    *observability.Metrics
}

type geocodeEnvelope struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []struct {
			ShortName string   `json:"short_name"`
			LongName  string   `json:"long_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		cache:      cache.New[[]usecase.GeocodeResult](ttl),
		breaker:    resilience.NewCircuitBreaker("geocode", cfg.CircuitBreaker, cfg.Metrics.BreakerTransition),
		logger:     logger.Named("geocode"),
		metrics:    cfg.Metrics,
	}
}

func (c *Client) Geocode(ctx context.Context, address, region string) ([]usecase.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}
	region = strings.ToUpper(strings.TrimSpace(region))

	results, err := c.cache.GetOrLoad(ctx, address+"|"+region, func(ctx context.Context) ([]usecase.GeocodeResult, error) {
		var results []usecase.GeocodeResult
		err := c.breaker.Do(func() error {
			var lookupErr error
			results, lookupErr = c.lookup(ctx, address, region)
			return lookupErr
		}, nil)
		return results, err
	})
	if err != nil {
		c.metrics.ObserveGeocode("error")
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "geocoder circuit open")
		}
		return nil, err
	}

	if len(results) == 0 {
		c.metrics.ObserveGeocode("empty")
	} else {
		c.metrics.ObserveGeocode("hit")
	}
	return results, nil
}

func (c *Client) lookup(ctx context.Context, address, region string) ([]usecase.GeocodeResult, error) {
	values := url.Values{}
	values.Set("address", address)
	values.Set("key", c.apiKey)
	if region != "" {
		values.Set("components", "country:"+region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build geocode request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "send geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "geocode returned non-200", "status", resp.StatusCode, "address", address)
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, crerr.Wrap(err, "read geocode response")
	}
	var envelope geocodeEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode geocode response")
	}

	results := make([]usecase.GeocodeResult, 0, len(envelope.Results))
	for _, item := range envelope.Results {
		result := usecase.GeocodeResult{
			Location: &entity.Coordinates{Lat: item.Geometry.Location.Lat, Lng: item.Geometry.Location.Lng},
		}
		for _, component := range item.AddressComponents {
			result.Components = append(result.Components, usecase.GeocodeComponent{
				Types:     component.Types,
				ShortName: component.ShortName,
			})
		}
		results = append(results, result)
	}
	return results, nil
}
