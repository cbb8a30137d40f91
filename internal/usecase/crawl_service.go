package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

const (
	defaultCrawlWorkers = 8
	msgNoRoster         = "no roster section found"
	msgNoTeamLinks      = "no team links found"
)

type CrawlConfig struct {
	MaxWorkers int
}

type CrawlTeamInput struct {
	URL            string `json:"url" validate:"required,url"`
	Category       string `json:"category" validate:"omitempty,max=64"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	LocationMarket string `json:"location_market" validate:"omitempty,len=2"`
	LeagueID       int64  `json:"league_id" validate:"omitempty,gt=0"`
	SkipErrors     bool   `json:"skip_errors"`
}

type CrawlTeamResult struct {
	TeamID      int64             `json:"team_id,omitempty"`
	Parsed      []string          `json:"parsed"`
	Skipped     []string          `json:"skipped"`
	SkipReasons map[string]string `json:"skip_reasons"`
	Message     string            `json:"message,omitempty"`
}

type CrawlLeagueInput struct {
	URL            string `json:"url" validate:"required,url"`
	Category       string `json:"category" validate:"omitempty,max=64"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	LocationMarket string `json:"location_market" validate:"omitempty,len=2"`
	Selector       string `json:"selector"`
}

type CrawlLeagueResult struct {
	LeagueID int64    `json:"league_id,omitempty"`
	Queued   []string `json:"queued"`
	Message  string   `json:"message,omitempty"`
}

// TeamCrawlEnqueuer schedules one team crawl as a background job.
type TeamCrawlEnqueuer interface {
	EnqueueCrawlTeam(ctx context.Context, input CrawlTeamInput) (string, error)
}

type CrawlService struct {
	teams      team.Repository
	fetcher    PageFetcher
	extractor  *wiki.Extractor
	reconciler *Reconciler
	enrichment *EnrichmentService
	locations  *LocationResolver
	enqueuer   TeamCrawlEnqueuer
	cfg        CrawlConfig
	logger     *logging.Logger
}

func NewCrawlService(
	teams team.Repository,
	fetcher PageFetcher,
	extractor *wiki.Extractor,
	reconciler *Reconciler,
	enrichment *EnrichmentService,
	locations *LocationResolver,
	enqueuer TeamCrawlEnqueuer,
	cfg CrawlConfig,
	logger *logging.Logger,
) *CrawlService {
	if extractor == nil {
		extractor = wiki.NewExtractor()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultCrawlWorkers
	}
	return &CrawlService{
		teams:      teams,
		fetcher:    fetcher,
		extractor:  extractor,
		reconciler: reconciler,
		enrichment: enrichment,
		locations:  locations,
		enqueuer:   enqueuer,
		cfg:        cfg,
		logger:     logger,
	}
}

// SetEnqueuer wires the job orchestrator after both services exist.
func (s *CrawlService) SetEnqueuer(enqueuer TeamCrawlEnqueuer) {
	s.enqueuer = enqueuer
}

// CrawlTeam saves the team behind a roster page and reconciles every player
// linked from the roster. One bad athlete page never stops the others.
func (s *CrawlService) CrawlTeam(ctx context.Context, input CrawlTeamInput) (CrawlTeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrawlService.CrawlTeam",
		pageAttr(input.URL), attribute.String("athletes.category", input.Category))
	defer span.End()

	result := CrawlTeamResult{Parsed: []string{}, Skipped: []string{}, SkipReasons: map[string]string{}}
	pageURL := strings.TrimSpace(input.URL)
	if pageURL == "" {
		return result, fmt.Errorf("%w: team url is required", ErrInvalidInput)
	}
	logger := s.logger.With("team_url", pageURL, "skip_errors", input.SkipErrors)

	doc, err := s.load(ctx, pageURL, input.SkipErrors, logger)
	if err != nil || doc == nil {
		return result, err
	}

	table, ok := wiki.LocateRoster(doc, input.Category)
	if !ok {
		if input.SkipErrors {
			logger.DebugContext(ctx, "roster not found, skipping team")
			return result, nil
		}
		logger.WarnContext(ctx, "roster not found")
		result.Message = msgNoRoster
		return result, fmt.Errorf("%w: %s: %s", ErrStructuralMismatch, msgNoRoster, pageURL)
	}

	stored, err := s.saveTeam(ctx, doc, input)
	if err != nil {
		return result, err
	}
	result.TeamID = stored.ID

	links := rosterURLs(doc, wiki.ExtractLinks(table, input.Category))
	teamFacts := entity.Facts{
		Category:       input.Category,
		Gender:         input.Gender,
		LocationMarket: input.LocationMarket,
		TeamName:       stored.Name,
		TeamID:         stored.ID,
	}

	rows, err := s.reconcileRoster(ctx, links, teamFacts, logger)
	if err != nil {
		return result, err
	}
	for _, row := range rows {
		if row.Skipped() {
			result.Skipped = append(result.Skipped, row.URL)
			result.SkipReasons[row.URL] = row.Reason
			continue
		}
		result.Parsed = append(result.Parsed, row.URL)
	}

	logger.InfoContext(ctx, "team crawled",
		"team_id", stored.ID,
		"parsed", len(result.Parsed),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

// load fetches and parses a page. In skip mode an unavailable page yields
// (nil, nil).
func (s *CrawlService) load(ctx context.Context, pageURL string, skipErrors bool, logger *logging.Logger) (*wiki.Document, error) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch url=%s: %w", pageURL, err)
	}
	if !page.OK() {
		if skipErrors {
			logger.DebugContext(ctx, "page unavailable, skipping", "status", page.StatusCode)
			return nil, nil
		}
		logger.WarnContext(ctx, "page unavailable", "status", page.StatusCode)
		return nil, fmt.Errorf("%w: url=%s status=%d", ErrSourceUnavailable, pageURL, page.StatusCode)
	}

	doc, err := wiki.ParseDocument(pageURL, page.Body)
	if err != nil {
		return nil, fmt.Errorf("parse url=%s: %w", pageURL, err)
	}
	return doc, nil
}

func (s *CrawlService) saveTeam(ctx context.Context, doc *wiki.Document, input CrawlTeamInput) (team.Team, error) {
	facts := entity.Facts{
		Name:           doc.Title(),
		Category:       input.Category,
		Gender:         input.Gender,
		LocationMarket: input.LocationMarket,
		LeagueID:       input.LeagueID,
	}
	card, err := s.extractor.Card(doc)
	if err != nil && !errors.Is(err, wiki.ErrNoInfoCard) {
		return team.Team{}, fmt.Errorf("extract team card: %w", err)
	}
	facts = facts.Merge(card)

	existing, found, err := s.teams.FindByCanonicalURL(ctx, doc.URL)
	if err != nil {
		return team.Team{}, fmt.Errorf("find team url=%s: %w", doc.URL, err)
	}
	if !found || existing.Coordinates == nil {
		facts.Coordinates = s.locations.Coordinates(ctx, facts.AdditionalInfo, teamAddressKeys, input.LocationMarket)
	}

	stored, outcome, err := s.reconciler.UpsertTeam(ctx, doc.URL, facts)
	if err != nil {
		return team.Team{}, err
	}
	if outcome == OutcomeSkipped {
		// Another crawl created the team first; continue with its row.
		return winner[team.Team](ctx, s.teams, doc.URL)
	}
	return stored, nil
}

// reconcileRoster fans the links out over a bounded worker pool and returns
// one result per link in roster order.
func (s *CrawlService) reconcileRoster(ctx context.Context, links []string, teamFacts entity.Facts, logger *logging.Logger) ([]AthleteResult, error) {
	rows := make([]AthleteResult, len(links))
	if len(links) == 0 {
		return rows, nil
	}

	workers, err := ants.NewPool(min(s.cfg.MaxWorkers, len(links)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			row, err := s.enrichment.reconcileAthlete(ctx, link, teamFacts, false)
			if err != nil {
				logger.ErrorContext(ctx, "athlete reconcile failed", "url", link, "error", err)
				row = AthleteResult{URL: link, Outcome: OutcomeSkipped, Reason: ReasonFailed}
			}
			rows[i] = row
		}); err != nil {
			wg.Done()
			rows[i] = AthleteResult{URL: link, Outcome: OutcomeSkipped, Reason: ReasonFailed}
			logger.ErrorContext(ctx, "submit athlete to worker pool failed", "url", link, "error", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

// rosterURLs absolutizes roster hrefs against the page and drops repeats.
func rosterURLs(doc *wiki.Document, links []wiki.RosterLink) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, link := range links {
		canonical, err := entity.CanonicalURL(doc.URL, link.Href)
		if err != nil {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

// CrawlLeague saves the league and queues a skip-mode crawl for every team
// link the selector finds.
func (s *CrawlService) CrawlLeague(ctx context.Context, input CrawlLeagueInput) (CrawlLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrawlService.CrawlLeague", pageAttr(input.URL))
	defer span.End()

	result := CrawlLeagueResult{Queued: []string{}}
	pageURL := strings.TrimSpace(input.URL)
	if pageURL == "" {
		return result, fmt.Errorf("%w: league url is required", ErrInvalidInput)
	}
	selector := strings.TrimSpace(input.Selector)
	if selector == "" {
		selector = wiki.DefaultTeamLinkSelector
	}
	if s.enqueuer == nil {
		return result, fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
	}
	logger := s.logger.With("league_url", pageURL)

	doc, err := s.load(ctx, pageURL, false, logger)
	if err != nil {
		return result, err
	}

	teamURLs, err := wiki.SelectLinks(doc, selector)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	facts := entity.Facts{
		Name:           doc.Title(),
		Category:       input.Category,
		Gender:         input.Gender,
		LocationMarket: input.LocationMarket,
	}
	card, err := s.extractor.Card(doc)
	if err != nil && !errors.Is(err, wiki.ErrNoInfoCard) {
		return result, fmt.Errorf("extract league card: %w", err)
	}
	stored, outcome, err := s.reconciler.UpsertLeague(ctx, doc.URL, facts.Merge(card))
	if err != nil {
		return result, err
	}
	if outcome == OutcomeSkipped {
		if stored, err = winner[league.League](ctx, s.reconciler.leagues, doc.URL); err != nil {
			return result, err
		}
	}
	result.LeagueID = stored.ID

	if len(teamURLs) == 0 {
		logger.WarnContext(ctx, "no team links matched", "selector", selector)
		result.Message = msgNoTeamLinks
		return result, nil
	}

	var (
		mu     sync.Mutex
		queued = make(map[string]bool, len(teamURLs))
	)
	p := pool.New().WithMaxGoroutines(s.cfg.MaxWorkers).WithContext(ctx)
	for _, teamURL := range teamURLs {
		p.Go(func(ctx context.Context) error {
			_, err := s.enqueuer.EnqueueCrawlTeam(ctx, CrawlTeamInput{
				URL:            teamURL,
				Category:       input.Category,
				Gender:         input.Gender,
				LocationMarket: input.LocationMarket,
				LeagueID:       stored.ID,
				SkipErrors:     true,
			})
			if err != nil {
				return fmt.Errorf("enqueue crawl-team url=%s: %w", teamURL, err)
			}
			mu.Lock()
			queued[teamURL] = true
			mu.Unlock()
			return nil
		})
	}
	err = p.Wait()

	for _, teamURL := range teamURLs {
		if queued[teamURL] {
			result.Queued = append(result.Queued, teamURL)
		}
	}
	logger.InfoContext(ctx, "league crawled", "league_id", stored.ID, "queued", len(result.Queued), "links", len(teamURLs))
	if err != nil {
		return result, err
	}
	return result, nil
}
