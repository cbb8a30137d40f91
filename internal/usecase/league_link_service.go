package usecase

import (
	"context"
	"fmt"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

const (
	defaultLinkBatchSize = 50
	leagueFactKey        = "League"
)

type LinkLeaguesInput struct {
	AfterID int64 `json:"after_id" validate:"gte=0"`
	Limit   int   `json:"limit" validate:"gte=0,lte=1000"`
}

type LinkLeaguesResult struct {
	Processed      int   `json:"processed"`
	Linked         int   `json:"linked"`
	CreatedLeagues int   `json:"created_leagues"`
	NextCursor     int64 `json:"next_cursor"`
	Done           bool  `json:"done"`
}

// LeagueLinkService resolves the "League" row of team cards into League
// records and links teams that have none yet.
type LeagueLinkService struct {
	teams      team.Repository
	fetcher    PageFetcher
	reconciler *Reconciler
	batchSize  int
	logger     *logging.Logger
}

func NewLeagueLinkService(teams team.Repository, fetcher PageFetcher, reconciler *Reconciler, batchSize int, logger *logging.Logger) *LeagueLinkService {
	if batchSize <= 0 {
		batchSize = defaultLinkBatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueLinkService{
		teams:      teams,
		fetcher:    fetcher,
		reconciler: reconciler,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// LinkLeagues processes one keyset page of teams after input.AfterID.
func (s *LeagueLinkService) LinkLeagues(ctx context.Context, input LinkLeaguesInput) (LinkLeaguesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueLinkService.LinkLeagues")
	defer span.End()

	limit := input.Limit
	if limit <= 0 {
		limit = s.batchSize
	}

	teams, err := s.teams.ListWithLeagueFact(ctx, input.AfterID, limit)
	if err != nil {
		return LinkLeaguesResult{}, fmt.Errorf("list teams after=%d: %w", input.AfterID, err)
	}

	result := LinkLeaguesResult{NextCursor: input.AfterID, Done: len(teams) < limit}
	for _, item := range teams {
		result.Processed++
		result.NextCursor = item.ID

		if item.LeagueID != 0 {
			continue
		}
		linked, created, err := s.linkTeam(ctx, item)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.WarnContext(ctx, "link team league failed", "team_id", item.ID, "url", item.CanonicalURL, "error", err)
			continue
		}
		if linked {
			result.Linked++
		}
		if created {
			result.CreatedLeagues++
		}
	}

	s.logger.InfoContext(ctx, "league linking batch done",
		"after_id", input.AfterID,
		"processed", result.Processed,
		"linked", result.Linked,
		"created_leagues", result.CreatedLeagues,
		"done", result.Done,
	)
	return result, nil
}

func (s *LeagueLinkService) linkTeam(ctx context.Context, item team.Team) (bool, bool, error) {
	page, err := s.fetcher.Fetch(ctx, item.CanonicalURL)
	if err != nil {
		return false, false, fmt.Errorf("fetch team: %w", err)
	}
	if !page.OK() {
		return false, false, fmt.Errorf("%w: status=%d", ErrSourceUnavailable, page.StatusCode)
	}
	doc, err := wiki.ParseDocument(item.CanonicalURL, page.Body)
	if err != nil {
		return false, false, fmt.Errorf("parse team page: %w", err)
	}

	href, ok := wiki.CardLink(doc, leagueFactKey)
	if !ok {
		return false, false, fmt.Errorf("%w: league row has no link", ErrStructuralMismatch)
	}
	leagueURL, err := entity.CanonicalURL(doc.URL, href)
	if err != nil {
		return false, false, fmt.Errorf("league href %q: %w", href, err)
	}

	stored, outcome, err := s.reconciler.UpsertLeague(ctx, leagueURL, entity.Facts{
		Name:           item.LeagueFact(),
		Category:       item.Category,
		Gender:         item.Gender,
		LocationMarket: item.LocationMarket,
	})
	if err != nil {
		return false, false, err
	}
	if outcome == OutcomeSkipped {
		if stored, err = winner[league.League](ctx, s.reconciler.leagues, leagueURL); err != nil {
			return false, false, err
		}
	}

	linked, err := s.teams.SetLeague(ctx, item.ID, stored.ID)
	if err != nil {
		return false, false, err
	}
	return linked, outcome == OutcomeCreated, nil
}
