package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mikekeda/athletes/internal/observability"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/platform/ratelimit"
	"github.com/mikekeda/athletes/internal/platform/resilience"
)

const (
	defaultUserAgent    = "athletes-crawler/1.0 (+https://github.com/mikekeda/athletes)"
	defaultMaxBodyBytes = 8 << 20
	defaultRobotsTTL    = 6 * time.Hour
)

// Page is a fetched document. Non-200 statuses are reported here, not as
// errors; the caller decides what an unavailable page means.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (p Page) OK() bool {
	return p.StatusCode == http.StatusOK
}

type FetcherConfig struct {
	HTTPClient     *http.Client
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	MaxBodyBytes   int64
	RatePerSecond  float64
	RateBurst      int
	RespectRobots  bool
	RobotsTTL      time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Metrics        *observability.Metrics
}

// Fetcher downloads wiki pages politely: one token bucket per host, robots.txt
// rules, bounded bodies and retries on throttling or server errors.
type Fetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
	retry        resilience.RetryPolicy
	limiter      *ratelimit.HostLimiter
	robots       *robotsChecker
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
	metrics      *observability.Metrics
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("page status=%d", e.code)
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	robotsTTL := cfg.RobotsTTL
	if robotsTTL <= 0 {
		robotsTTL = defaultRobotsTTL
	}

	f := &Fetcher{
		httpClient:   httpClient,
		userAgent:    userAgent,
		maxBodyBytes: maxBody,
		retry: resilience.RetryPolicy{
			MaxRetries: max(cfg.MaxRetries, 0),
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		limiter: ratelimit.NewHostLimiter(cfg.RatePerSecond, cfg.RateBurst),
		breaker: resilience.NewCircuitBreaker("wiki", cfg.CircuitBreaker, cfg.Metrics.BreakerTransition),
		logger:  logger.Named("wiki.fetcher"),
		metrics: cfg.Metrics,
	}
	if cfg.RespectRobots {
		f.robots = newRobotsChecker(httpClient, userAgent, robotsTTL)
	}
	return f
}

// Fetch downloads rawURL. Pages disallowed by robots.txt come back with status
// 403 without touching the network.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Page{}, crerr.Newf("invalid page url %q", rawURL)
	}
	pageURL := parsed.String()

	if f.robots != nil {
		allowed, delay := f.robots.check(ctx, pageURL)
		f.limiter.SetCrawlDelay(pageURL, delay)
		if !allowed {
			f.logger.WarnContext(ctx, "robots.txt disallows page", "url", pageURL)
			f.metrics.ObservePageFetch(http.StatusForbidden)
			return Page{URL: pageURL, StatusCode: http.StatusForbidden}, nil
		}
	}

	var page Page
	err = f.breaker.Do(func() error {
		return resilience.Retry(ctx, f.retry, func(attempt int) error {
			if err := f.limiter.Wait(ctx, pageURL); err != nil {
				return err
			}
			got, retryAfter, err := f.do(ctx, pageURL)
			if err != nil {
				f.logger.DebugContext(ctx, "page fetch attempt failed", "url", pageURL, "attempt", attempt, "error", err)
				return resilience.Retryable(err, 0)
			}
			page = got
			if isRetryableStatus(got.StatusCode) {
				return resilience.Retryable(&statusError{code: got.StatusCode}, retryAfter)
			}
			return nil
		})
	}, isFetchFailure)

	var status *statusError
	if err != nil && (ctx.Err() != nil || !errors.As(err, &status)) {
		f.metrics.ObservePageFetch(0)
		return Page{}, crerr.Wrapf(err, "fetch %s", pageURL)
	}

	f.metrics.ObservePageFetch(page.StatusCode)
	if !page.OK() {
		f.logger.WarnContext(ctx, "page unavailable", "url", pageURL, "status", page.StatusCode)
	}
	return page, nil
}

func (f *Fetcher) do(ctx context.Context, pageURL string) (Page, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, 0, crerr.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Page{}, 0, crerr.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return Page{}, 0, crerr.Wrap(err, "read body")
	}
	return Page{URL: pageURL, StatusCode: resp.StatusCode, Body: body}, parseRetryAfter(resp.Header.Get("Retry-After")), nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// isFetchFailure decides what counts against the breaker: transport errors
// and server errors, not cancellations or throttling.
func isFetchFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.code >= http.StatusInternalServerError
	}
	return true
}

func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}
