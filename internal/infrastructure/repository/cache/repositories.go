// Package cache wraps the catalog repositories with read-through caching of
// id lookups and team rosters.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
	basecache "github.com/mikekeda/athletes/internal/platform/cache"
)

// Lookups by canonical URL and keyset scans always go to the next
// repository; they drive reconciliation and must see fresh rows.

// found records misses too, so unknown ids are not re-queried for the ttl.
type found[T any] struct {
	value  T
	exists bool
}

func lookup[T any](ctx context.Context, store *basecache.Store[found[T]], id int64, get func(context.Context, int64) (T, bool, error)) (T, bool, error) {
	hit, err := store.GetOrLoad(ctx, idKey(id), func(ctx context.Context) (found[T], error) {
		value, exists, err := get(ctx, id)
		return found[T]{value: value, exists: exists}, err
	})
	return hit.value, hit.exists, err
}

type AthleteRepository struct {
	athlete.Repository
	byID    *basecache.Store[found[athlete.Athlete]]
	rosters *basecache.Store[[]athlete.Athlete]
}

func NewAthleteRepository(next athlete.Repository, ttl time.Duration) *AthleteRepository {
	return &AthleteRepository{
		Repository: next,
		byID:       basecache.New[found[athlete.Athlete]](ttl),
		rosters:    basecache.New[[]athlete.Athlete](ttl),
	}
}

func (r *AthleteRepository) GetByID(ctx context.Context, id int64) (athlete.Athlete, bool, error) {
	return lookup(ctx, r.byID, id, r.Repository.GetByID)
}

// ListByTeam hands out a copy so callers cannot mutate the cached roster.
func (r *AthleteRepository) ListByTeam(ctx context.Context, teamID int64) ([]athlete.Athlete, error) {
	items, err := r.rosters.GetOrLoad(ctx, idKey(teamID), func(ctx context.Context) ([]athlete.Athlete, error) {
		return r.Repository.ListByTeam(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	return append([]athlete.Athlete(nil), items...), nil
}

func (r *AthleteRepository) Create(ctx context.Context, a *athlete.Athlete) error {
	return r.afterWrite(a, r.Repository.Create(ctx, a))
}

func (r *AthleteRepository) Update(ctx context.Context, a *athlete.Athlete) error {
	return r.afterWrite(a, r.Repository.Update(ctx, a))
}

func (r *AthleteRepository) UpdateSocial(ctx context.Context, a *athlete.Athlete) error {
	return r.afterWrite(a, r.Repository.UpdateSocial(ctx, a))
}

func (r *AthleteRepository) afterWrite(a *athlete.Athlete, err error) error {
	if err != nil {
		return err
	}
	r.byID.Delete(idKey(a.ID))
	if a.TeamID > 0 {
		r.rosters.Delete(idKey(a.TeamID))
	}
	return nil
}

type TeamRepository struct {
	team.Repository
	byID *basecache.Store[found[team.Team]]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{Repository: next, byID: basecache.New[found[team.Team]](ttl)}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	return lookup(ctx, r.byID, id, r.Repository.GetByID)
}

func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	return r.afterWrite(t.ID, r.Repository.Create(ctx, t))
}

func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	return r.afterWrite(t.ID, r.Repository.Update(ctx, t))
}

func (r *TeamRepository) SetLeague(ctx context.Context, teamID, leagueID int64) (bool, error) {
	linked, err := r.Repository.SetLeague(ctx, teamID, leagueID)
	if err != nil || !linked {
		return linked, err
	}
	return true, r.afterWrite(teamID, nil)
}

func (r *TeamRepository) afterWrite(id int64, err error) error {
	if err == nil {
		r.byID.Delete(idKey(id))
	}
	return err
}

type LeagueRepository struct {
	league.Repository
	byID *basecache.Store[found[league.League]]
}

func NewLeagueRepository(next league.Repository, ttl time.Duration) *LeagueRepository {
	return &LeagueRepository{Repository: next, byID: basecache.New[found[league.League]](ttl)}
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	return lookup(ctx, r.byID, id, r.Repository.GetByID)
}

func (r *LeagueRepository) Create(ctx context.Context, l *league.League) error {
	err := r.Repository.Create(ctx, l)
	if err == nil {
		r.byID.Delete(idKey(l.ID))
	}
	return err
}

func (r *LeagueRepository) Update(ctx context.Context, l *league.League) error {
	err := r.Repository.Update(ctx, l)
	if err == nil {
		r.byID.Delete(idKey(l.ID))
	}
	return err
}

func idKey(id int64) string { return strconv.FormatInt(id, 10) }
