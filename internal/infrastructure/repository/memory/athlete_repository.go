package memory

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
)

type AthleteRepository struct {
	items *table[athlete.Athlete]
	now   func() time.Time
}

func NewAthleteRepository() *AthleteRepository {
	return &AthleteRepository{items: newTable(cloneAthlete), now: time.Now}
}

func (r *AthleteRepository) GetByID(_ context.Context, id int64) (athlete.Athlete, bool, error) {
	item, ok := r.items.get(id)
	return item, ok, nil
}

func (r *AthleteRepository) FindByCanonicalURL(_ context.Context, canonicalURL string) (athlete.Athlete, bool, error) {
	item, ok := r.items.find(canonicalURL)
	return item, ok, nil
}

func (r *AthleteRepository) Create(_ context.Context, a *athlete.Athlete) error {
	now := r.now().UTC()
	stored, err := r.items.insert(a.CanonicalURL, *a, func(item *athlete.Athlete, id int64) {
		item.ID = id
		item.CreatedAt = now
		item.UpdatedAt = now
	})
	if err != nil {
		return fmt.Errorf("insert athlete url=%s: %w", a.CanonicalURL, err)
	}
	*a = stored
	return nil
}

// Update fills the stored record's empty fields from a, mirroring the guarded
// SQL update, and refreshes a with the result.
func (r *AthleteRepository) Update(_ context.Context, a *athlete.Athlete) error {
	stored, ok := r.items.modify(a.ID, func(item *athlete.Athlete) bool {
		item.FillFrom(athleteFacts(*a))
		item.UpdatedAt = r.now().UTC()
		return true
	})
	if !ok {
		return fmt.Errorf("update athlete id=%d: not found", a.ID)
	}
	*a = stored
	return nil
}

func (r *AthleteRepository) UpdateSocial(_ context.Context, a *athlete.Athlete) error {
	_, ok := r.items.modify(a.ID, func(item *athlete.Athlete) bool {
		item.TwitterFollowers = a.TwitterFollowers
		item.TwitterInfo = maps.Clone(a.TwitterInfo)
		item.YouTubeInfo = maps.Clone(a.YouTubeInfo)
		item.UpdatedAt = r.now().UTC()
		return true
	})
	if !ok {
		return fmt.Errorf("update athlete social id=%d: not found", a.ID)
	}
	return nil
}

func (r *AthleteRepository) ListAfter(_ context.Context, afterID int64, limit int, filter athlete.ListFilter) ([]athlete.Athlete, error) {
	var keep func(athlete.Athlete) bool
	switch filter.EmptyBlob {
	case "":
	case athlete.ColumnAdditionalInfo:
		keep = func(a athlete.Athlete) bool { return a.AdditionalInfo.IsEmpty() }
	case athlete.ColumnTwitterInfo:
		keep = func(a athlete.Athlete) bool { return len(a.TwitterInfo) == 0 }
	case athlete.ColumnYouTubeInfo:
		keep = func(a athlete.Athlete) bool { return len(a.YouTubeInfo) == 0 }
	default:
		return nil, fmt.Errorf("unknown athlete blob column %q", filter.EmptyBlob)
	}
	return r.items.scan(afterID, limit, keep), nil
}

func (r *AthleteRepository) ListByTeam(_ context.Context, teamID int64) ([]athlete.Athlete, error) {
	return r.items.scan(0, 0, func(a athlete.Athlete) bool { return a.TeamID == teamID }), nil
}

func athleteFacts(a athlete.Athlete) entity.Facts {
	return entity.Facts{
		Name:           a.Name,
		PhotoURL:       a.PhotoURL,
		Category:       a.Category,
		Gender:         string(a.Gender),
		LocationMarket: a.LocationMarket,
		DomesticMarket: a.DomesticMarket,
		TeamName:       a.TeamName,
		TeamID:         a.TeamID,
		Birthday:       a.Birthday,
		International:  a.International,
		AdditionalInfo: a.AdditionalInfo,
	}
}

func cloneAthlete(a athlete.Athlete) athlete.Athlete {
	if a.AdditionalInfo != nil {
		a.AdditionalInfo = a.AdditionalInfo.Clone()
	}
	a.TwitterInfo = maps.Clone(a.TwitterInfo)
	a.YouTubeInfo = maps.Clone(a.YouTubeInfo)
	return a
}
