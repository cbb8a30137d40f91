package athlete

import (
	"fmt"
	"time"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/vocabulary"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Athlete is a person discovered on a roster page and deepened from their own
// wiki page.
type Athlete struct {
	ID             int64
	CanonicalURL   string
	Name           string
	PhotoURL       string
	Category       string
	Gender         Gender
	LocationMarket string
	DomesticMarket string
	Birthday       time.Time
	TeamName       string
	TeamID         int64
	International  bool
	AdditionalInfo *entity.FactSheet

	// Social counters are refreshed on every sync and never go through FillFrom.
	TwitterFollowers int64
	TwitterInfo      map[string]any
	YouTubeInfo      map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	ColumnAdditionalInfo = "additional_info"
	ColumnTwitterInfo    = "twitter_info"
	ColumnYouTubeInfo    = "youtube_info"
)

func (a Athlete) Validate() error {
	if a.CanonicalURL == "" {
		return fmt.Errorf("athlete canonical url is required")
	}
	if a.Gender != "" && a.Gender != GenderMale && a.Gender != GenderFemale {
		return fmt.Errorf("invalid athlete gender: %s", a.Gender)
	}
	if a.Category != "" && !vocabulary.IsCategory(a.Category) {
		return fmt.Errorf("invalid athlete category: %s", a.Category)
	}
	return nil
}

func (a *Athlete) SourceURL() string { return a.CanonicalURL }

// FillFrom applies f to the athlete's empty fields only.
func (a *Athlete) FillFrom(f entity.Facts) []string {
	var fl entity.Filler
	fl.String("name", &a.Name, f.Name)
	fl.String("photo_url", &a.PhotoURL, f.PhotoURL)
	fl.String("category", &a.Category, f.Category)
	gender := string(a.Gender)
	fl.String("gender", &gender, f.Gender)
	a.Gender = Gender(gender)
	fl.String("location_market", &a.LocationMarket, f.LocationMarket)
	fl.String("domestic_market", &a.DomesticMarket, f.DomesticMarket)
	fl.Time("birthday", &a.Birthday, f.Birthday)
	fl.String("team_name", &a.TeamName, f.TeamName)
	fl.ID("team_id", &a.TeamID, f.TeamID)
	fl.Flag("international", &a.International, f.International)
	fl.Sheet("additional_info", &a.AdditionalInfo, f.AdditionalInfo)
	return fl.Changed()
}

func (a *Athlete) ResetBlob(column string) {
	switch column {
	case ColumnTwitterInfo:
		a.TwitterInfo = nil
		a.TwitterFollowers = 0
	case ColumnYouTubeInfo:
		a.YouTubeInfo = nil
	default:
		a.AdditionalInfo = nil
	}
}

// Age is the number of whole years between the birthday and now.
func (a Athlete) Age(now time.Time) int {
	if a.Birthday.IsZero() {
		return 0
	}
	return AgeAt(a.Birthday, now)
}

// MarketExport reports an athlete playing outside their domestic market.
func (a Athlete) MarketExport() bool {
	return a.DomesticMarket != "" && a.LocationMarket != "" && a.DomesticMarket != a.LocationMarket
}

func (a Athlete) Slug() string {
	return entity.Slug(a.CanonicalURL)
}

// AgeAt counts completed years from birthday to now.
func AgeAt(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		years--
	}
	return years
}
