package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
)

type LeagueRepository struct {
	items *table[league.League]
	now   func() time.Time
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{items: newTable(cloneLeague), now: time.Now}
}

func (r *LeagueRepository) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	item, ok := r.items.get(id)
	return item, ok, nil
}

func (r *LeagueRepository) FindByCanonicalURL(_ context.Context, canonicalURL string) (league.League, bool, error) {
	item, ok := r.items.find(canonicalURL)
	return item, ok, nil
}

func (r *LeagueRepository) Create(_ context.Context, l *league.League) error {
	now := r.now().UTC()
	stored, err := r.items.insert(l.CanonicalURL, *l, func(item *league.League, id int64) {
		item.ID = id
		item.CreatedAt = now
		item.UpdatedAt = now
	})
	if err != nil {
		return fmt.Errorf("insert league url=%s: %w", l.CanonicalURL, err)
	}
	*l = stored
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, l *league.League) error {
	stored, ok := r.items.modify(l.ID, func(item *league.League) bool {
		item.FillFrom(entity.Facts{
			Name:           l.Name,
			PhotoURL:       l.PhotoURL,
			Category:       l.Category,
			Gender:         l.Gender,
			LocationMarket: l.LocationMarket,
			AdditionalInfo: l.AdditionalInfo,
		})
		item.UpdatedAt = r.now().UTC()
		return true
	})
	if !ok {
		return fmt.Errorf("update league id=%d: not found", l.ID)
	}
	*l = stored
	return nil
}

func cloneLeague(l league.League) league.League {
	if l.AdditionalInfo != nil {
		l.AdditionalInfo = l.AdditionalInfo.Clone()
	}
	return l
}
