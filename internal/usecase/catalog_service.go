package usecase

import (
	"context"
	"fmt"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
)

// CatalogService serves stored records to the read API. Missing photos are
// reported as the default placeholder; the store keeps them empty so a later
// crawl can still fill them.
type CatalogService struct {
	athletes athlete.Repository
	teams    team.Repository
	leagues  league.Repository
}

func NewCatalogService(athletes athlete.Repository, teams team.Repository, leagues league.Repository) *CatalogService {
	return &CatalogService{
		athletes: athletes,
		teams:    teams,
		leagues:  leagues,
	}
}

func (s *CatalogService) GetAthlete(ctx context.Context, id int64) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetAthlete")
	defer span.End()

	if id <= 0 {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("get athlete by id: %w", err)
	}
	if !exists {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete=%d", ErrNotFound, id)
	}
	item.PhotoURL = photoOrDefault(item.PhotoURL)
	return item, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetTeam")
	defer span.End()

	item, err := s.getTeam(ctx, id)
	if err != nil {
		return team.Team{}, err
	}
	item.PhotoURL = photoOrDefault(item.PhotoURL)
	return item, nil
}

func (s *CatalogService) GetLeague(ctx context.Context, id int64) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetLeague")
	defer span.End()

	if id <= 0 {
		return league.League{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.leagues.GetByID(ctx, id)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%d", ErrNotFound, id)
	}
	item.PhotoURL = photoOrDefault(item.PhotoURL)
	return item, nil
}

func (s *CatalogService) ListAthletesByTeam(ctx context.Context, teamID int64) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListAthletesByTeam")
	defer span.End()

	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}
	items, err := s.athletes.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list athletes by team: %w", err)
	}
	for i := range items {
		items[i].PhotoURL = photoOrDefault(items[i].PhotoURL)
	}
	return items, nil
}

func (s *CatalogService) getTeam(ctx context.Context, id int64) (team.Team, error) {
	if id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, id)
	}
	return item, nil
}

func photoOrDefault(photoURL string) string {
	if photoURL == "" {
		return entity.DefaultPhotoURL
	}
	return photoURL
}
