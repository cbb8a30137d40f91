package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

type EnrichAthleteInput struct {
	URL string `json:"url" validate:"required,url"`
}

// AthleteResult is the outcome for one athlete page.
type AthleteResult struct {
	URL       string  `json:"url"`
	AthleteID int64   `json:"athlete_id,omitempty"`
	Outcome   Outcome `json:"outcome"`
	Reason    string  `json:"reason,omitempty"`
}

func (r AthleteResult) Skipped() bool {
	return r.Outcome == OutcomeSkipped
}

type EnrichmentService struct {
	athletes   athlete.Repository
	fetcher    PageFetcher
	extractor  *wiki.Extractor
	reconciler *Reconciler
	locations  *LocationResolver
	observer   CrawlObserver
	logger     *logging.Logger
}

func NewEnrichmentService(
	athletes athlete.Repository,
	fetcher PageFetcher,
	extractor *wiki.Extractor,
	reconciler *Reconciler,
	locations *LocationResolver,
	observer CrawlObserver,
	logger *logging.Logger,
) *EnrichmentService {
	if extractor == nil {
		extractor = wiki.NewExtractor()
	}
	if observer == nil {
		observer = noopCrawlObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &EnrichmentService{
		athletes:   athletes,
		fetcher:    fetcher,
		extractor:  extractor,
		reconciler: reconciler,
		locations:  locations,
		observer:   observer,
		logger:     logger,
	}
}

// EnrichAthlete always reads the athlete page and fills what is still empty.
func (s *EnrichmentService) EnrichAthlete(ctx context.Context, input EnrichAthleteInput) (AthleteResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.EnrichAthlete", pageAttr(input.URL))
	defer span.End()

	pageURL := strings.TrimSpace(input.URL)
	if pageURL == "" {
		return AthleteResult{}, fmt.Errorf("%w: athlete url is required", ErrInvalidInput)
	}
	result, err := s.reconcileAthlete(ctx, pageURL, entity.Facts{}, true)
	if err != nil {
		failSpan(span, err)
		return result, err
	}
	span.SetAttributes(
		attribute.String("athletes.outcome", string(result.Outcome)),
		attribute.String("athletes.skip_reason", result.Reason),
	)
	return result, nil
}

// reconcileAthlete merges base (facts known from the roster) with what the
// athlete page says. An existing athlete that already has a name only takes
// base unless deepen is set. A new athlete is created only when its page
// extracts cleanly.
func (s *EnrichmentService) reconcileAthlete(ctx context.Context, pageURL string, base entity.Facts, deepen bool) (AthleteResult, error) {
	result := AthleteResult{URL: pageURL}

	existing, found, err := s.athletes.FindByCanonicalURL(ctx, pageURL)
	if err != nil {
		return result, fmt.Errorf("find athlete url=%s: %w", pageURL, err)
	}

	facts := base
	if !found || existing.Name == "" || deepen {
		extracted, reason, err := s.athleteFacts(ctx, pageURL)
		if err != nil {
			return result, err
		}
		if reason != "" && !found {
			result.Outcome = OutcomeSkipped
			result.Reason = reason
			s.observer.ObserveCrawlOutcome("athlete", string(OutcomeSkipped), reason)
			return result, nil
		}
		if reason == "" {
			facts = base.Merge(extracted)
		} else {
			result.Reason = reason
		}
	}

	if facts.DomesticMarket == "" && (!found || existing.DomesticMarket == "") {
		facts.DomesticMarket = s.locations.Market(ctx, facts.AdditionalInfo, athleteAddressKeys, "")
	}

	stored, outcome, err := s.reconciler.UpsertAthlete(ctx, pageURL, facts)
	if err != nil {
		return result, err
	}
	result.AthleteID = stored.ID
	result.Outcome = outcome
	if outcome == OutcomeSkipped {
		result.Reason = ReasonDuplicateKey
	}
	return result, nil
}

// athleteFacts fetches and extracts one athlete page. Disqualifying page
// conditions come back as a skip reason; only transport or context failures
// are errors.
func (s *EnrichmentService) athleteFacts(ctx context.Context, pageURL string) (entity.Facts, string, error) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return entity.Facts{}, "", fmt.Errorf("fetch athlete url=%s: %w", pageURL, err)
	}
	if !page.OK() {
		s.logger.WarnContext(ctx, "athlete page unavailable", "url", pageURL, "status", page.StatusCode)
		return entity.Facts{}, ReasonSourceUnavailable, nil
	}

	doc, err := wiki.ParseDocument(pageURL, page.Body)
	if err != nil {
		s.logger.WarnContext(ctx, "athlete page unparsable", "url", pageURL, "error", err)
		return entity.Facts{}, ReasonNoInfoCard, nil
	}

	facts, err := s.extractor.Athlete(doc)
	if err == nil {
		return facts, "", nil
	}
	var extractErr *wiki.ExtractionError
	if !errors.As(err, &extractErr) {
		return entity.Facts{}, "", fmt.Errorf("extract athlete url=%s: %w", pageURL, err)
	}

	s.logger.WarnContext(ctx, "athlete not extracted", "url", pageURL, "reason", extractErr.Reason, "age", extractErr.Age)
	return entity.Facts{}, skipReason(extractErr.Reason), nil
}

func skipReason(reason wiki.ExtractionReason) string {
	switch reason {
	case wiki.ReasonNoBirthday:
		return ReasonNoBirthday
	case wiki.ReasonTooOld:
		return ReasonTooOld
	default:
		return ReasonNoInfoCard
	}
}
