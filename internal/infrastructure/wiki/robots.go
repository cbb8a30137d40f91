package wiki

import (
	"context"
	"net/http"
	"net/url"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/temoto/robotstxt"

	"github.com/mikekeda/athletes/internal/platform/cache"
)

// robotsChecker answers robots.txt questions per host, caching each host's
// rules for the store TTL.
type robotsChecker struct {
	httpClient *http.Client
	userAgent  string
	rules      *cache.Store[*robotstxt.RobotsData]
}

func newRobotsChecker(httpClient *http.Client, userAgent string, ttl time.Duration) *robotsChecker {
	return &robotsChecker{
		httpClient: httpClient,
		userAgent:  userAgent,
		rules:      cache.New[*robotstxt.RobotsData](ttl),
	}
}

// check reports whether rawURL may be fetched and the crawl delay the host
// asks for. Hosts whose robots.txt cannot be read are allowed.
func (r *robotsChecker) check(ctx context.Context, rawURL string) (bool, time.Duration) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true, 0
	}

	data, err := r.rules.GetOrLoad(ctx, parsed.Host, func(ctx context.Context) (*robotstxt.RobotsData, error) {
		return r.load(ctx, parsed.Scheme+"://"+parsed.Host+"/robots.txt")
	})
	if err != nil || data == nil {
		return true, 0
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	var delay time.Duration
	if group := data.FindGroup(r.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return data.TestAgent(path, r.userAgent), delay
}

func (r *robotsChecker) load(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build robots request")
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch robots.txt")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, crerr.Wrap(err, "parse robots.txt")
	}
	return data, nil
}
