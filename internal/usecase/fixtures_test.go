package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/infrastructure/repository/memory"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

const site = "https://en.wikipedia.org"

// stubFetcher serves canned pages; unknown URLs answer 404.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newStubFetcher(pages map[string]string) *stubFetcher {
	return &stubFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (wiki.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	body, ok := f.pages[url]
	if !ok {
		return wiki.Page{URL: url, StatusCode: http.StatusNotFound}, nil
	}
	return wiki.Page{URL: url, StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func (f *stubFetcher) callsFor(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

type stubGeocoder struct {
	results []GeocodeResult
	err     error
	calls   []string
	mu      sync.Mutex
}

func (g *stubGeocoder) Geocode(_ context.Context, address, region string) ([]GeocodeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, address+"|"+region)
	return g.results, g.err
}

type stubEnqueuer struct {
	mu     sync.Mutex
	inputs []CrawlTeamInput
}

func (e *stubEnqueuer) EnqueueCrawlTeam(_ context.Context, input CrawlTeamInput) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs = append(e.inputs, input)
	return "crawl-team-" + entity.Slug(input.URL), nil
}

type testEnv struct {
	athletes   *memory.AthleteRepository
	teams      *memory.TeamRepository
	leagues    *memory.LeagueRepository
	fetcher    *stubFetcher
	reconciler *Reconciler
	enrichment *EnrichmentService
	crawl      *CrawlService
	links      *LeagueLinkService
}

func newTestEnv(t *testing.T, pages map[string]string, geocoder Geocoder) *testEnv {
	t.Helper()

	logger := logging.NewNop()
	env := &testEnv{
		athletes: memory.NewAthleteRepository(),
		teams:    memory.NewTeamRepository(),
		leagues:  memory.NewLeagueRepository(),
		fetcher:  newStubFetcher(pages),
	}
	extractor := wiki.NewExtractor(wiki.WithClock(func() time.Time { return fixedNow }))
	locations := NewLocationResolver(geocoder, logger)
	env.reconciler = NewReconciler(env.athletes, env.teams, env.leagues, nil, logger)
	env.enrichment = NewEnrichmentService(env.athletes, env.fetcher, extractor, env.reconciler, locations, nil, logger)
	env.crawl = NewCrawlService(env.teams, env.fetcher, extractor, env.reconciler, env.enrichment, locations, nil, CrawlConfig{MaxWorkers: 4}, logger)
	env.links = NewLeagueLinkService(env.teams, env.fetcher, env.reconciler, 10, logger)
	return env
}

func teamPage(title, card, rows string) string {
	return `<html><head><title>` + title + ` - Wikipedia</title></head><body>
<h1>` + title + `</h1>` + card + `
<div class="mw-heading mw-heading2"><h2 id="Current_squad">Current squad</h2></div>
<table class="wikitable">` + rows + `</table>
</body></html>`
}

func athletePage(name, bday, rows string) string {
	bdayRow := ""
	if bday != "" {
		bdayRow = `<tr><th>Born</th><td><span class="bday">` + bday + `</span></td></tr>`
	}
	return `<html><head><title>` + name + ` - Wikipedia</title></head><body>
<table class="infobox vcard">
<caption class="fn">` + name + `</caption>
<tr><td colspan="2"><img src="//upload.wikimedia.org/` + entity.Slug(name) + `.jpg"></td></tr>
` + bdayRow + rows + `
</table></body></html>`
}
