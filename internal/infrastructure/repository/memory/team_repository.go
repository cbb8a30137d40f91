package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/team"
)

type TeamRepository struct {
	items *table[team.Team]
	now   func() time.Time
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: newTable(cloneTeam), now: time.Now}
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	item, ok := r.items.get(id)
	return item, ok, nil
}

func (r *TeamRepository) FindByCanonicalURL(_ context.Context, canonicalURL string) (team.Team, bool, error) {
	item, ok := r.items.find(canonicalURL)
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, t *team.Team) error {
	now := r.now().UTC()
	stored, err := r.items.insert(t.CanonicalURL, *t, func(item *team.Team, id int64) {
		item.ID = id
		item.CreatedAt = now
		item.UpdatedAt = now
	})
	if err != nil {
		return fmt.Errorf("insert team url=%s: %w", t.CanonicalURL, err)
	}
	*t = stored
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t *team.Team) error {
	stored, ok := r.items.modify(t.ID, func(item *team.Team) bool {
		item.FillFrom(entity.Facts{
			Name:           t.Name,
			PhotoURL:       t.PhotoURL,
			Category:       t.Category,
			Gender:         t.Gender,
			LocationMarket: t.LocationMarket,
			LeagueID:       t.LeagueID,
			Coordinates:    t.Coordinates,
			AdditionalInfo: t.AdditionalInfo,
		})
		item.UpdatedAt = r.now().UTC()
		return true
	})
	if !ok {
		return fmt.Errorf("update team id=%d: not found", t.ID)
	}
	*t = stored
	return nil
}

func (r *TeamRepository) ListWithLeagueFact(_ context.Context, afterID int64, limit int) ([]team.Team, error) {
	return r.items.scan(afterID, limit, func(t team.Team) bool { return t.LeagueFact() != "" }), nil
}

func (r *TeamRepository) SetLeague(_ context.Context, teamID, leagueID int64) (bool, error) {
	_, changed := r.items.modify(teamID, func(item *team.Team) bool {
		if item.LeagueID != 0 {
			return false
		}
		item.LeagueID = leagueID
		item.UpdatedAt = r.now().UTC()
		return true
	})
	return changed, nil
}

func cloneTeam(t team.Team) team.Team {
	if t.AdditionalInfo != nil {
		t.AdditionalInfo = t.AdditionalInfo.Clone()
	}
	if t.Coordinates != nil {
		c := *t.Coordinates
		t.Coordinates = &c
	}
	return t
}
