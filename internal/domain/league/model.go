package league

import (
	"fmt"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
)

// League groups teams; it is discovered from league pages or from a team's
// info card.
type League struct {
	ID             int64
	CanonicalURL   string
	Name           string
	PhotoURL       string
	Category       string
	Gender         string
	LocationMarket string
	AdditionalInfo *entity.FactSheet
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l League) Validate() error {
	if l.CanonicalURL == "" {
		return fmt.Errorf("league canonical url is required")
	}
	return nil
}

func (l *League) SourceURL() string { return l.CanonicalURL }

func (l *League) FillFrom(f entity.Facts) []string {
	var fl entity.Filler
	fl.String("name", &l.Name, f.Name)
	fl.String("photo_url", &l.PhotoURL, f.PhotoURL)
	fl.String("category", &l.Category, f.Category)
	fl.String("gender", &l.Gender, f.Gender)
	fl.String("location_market", &l.LocationMarket, f.LocationMarket)
	fl.Sheet("additional_info", &l.AdditionalInfo, f.AdditionalInfo)
	return fl.Changed()
}

func (l *League) ResetBlob(string) {
	l.AdditionalInfo = nil
}
