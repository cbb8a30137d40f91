package team

import (
	"fmt"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
)

// Team is a club whose roster page lists athletes.
type Team struct {
	ID             int64
	CanonicalURL   string
	Name           string
	PhotoURL       string
	Category       string
	Gender         string
	LocationMarket string
	// LeagueID is set at most once; see Repository.SetLeague.
	LeagueID       int64
	Coordinates    *entity.Coordinates
	AdditionalInfo *entity.FactSheet
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Team) Validate() error {
	if t.CanonicalURL == "" {
		return fmt.Errorf("team canonical url is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

func (t *Team) SourceURL() string { return t.CanonicalURL }

func (t *Team) FillFrom(f entity.Facts) []string {
	var fl entity.Filler
	fl.String("name", &t.Name, f.Name)
	fl.String("photo_url", &t.PhotoURL, f.PhotoURL)
	fl.String("category", &t.Category, f.Category)
	fl.String("gender", &t.Gender, f.Gender)
	fl.String("location_market", &t.LocationMarket, f.LocationMarket)
	fl.ID("league_id", &t.LeagueID, f.LeagueID)
	fl.Coordinates("coordinates", &t.Coordinates, f.Coordinates)
	fl.Sheet("additional_info", &t.AdditionalInfo, f.AdditionalInfo)
	return fl.Changed()
}

func (t *Team) ResetBlob(string) {
	t.AdditionalInfo = nil
}

// LeagueFact is the "League" info card value, empty when the card has none.
func (t Team) LeagueFact() string {
	v, _ := t.AdditionalInfo.Get("League")
	return v
}
