package httpapi

import (
	"time"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/league"
	"github.com/mikekeda/athletes/internal/domain/team"
)

type factDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type athleteDTO struct {
	ID               int64          `json:"id"`
	CanonicalURL     string         `json:"canonical_url"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	PhotoURL         string         `json:"photo_url"`
	Category         string         `json:"category,omitempty"`
	Gender           string         `json:"gender,omitempty"`
	LocationMarket   string         `json:"location_market,omitempty"`
	DomesticMarket   string         `json:"domestic_market,omitempty"`
	MarketExport     bool           `json:"market_export"`
	Birthday         string         `json:"birthday,omitempty"`
	Age              int            `json:"age,omitempty"`
	TeamName         string         `json:"team_name,omitempty"`
	TeamID           int64          `json:"team_id,omitempty"`
	International    bool           `json:"international"`
	TwitterFollowers int64          `json:"twitter_followers"`
	TwitterInfo      map[string]any `json:"twitter_info,omitempty"`
	YouTubeInfo      map[string]any `json:"youtube_info,omitempty"`
	AdditionalInfo   []factDTO      `json:"additional_info"`
	UpdatedAtUTC     string         `json:"updated_at_utc"`
}

type teamDTO struct {
	ID             int64     `json:"id"`
	CanonicalURL   string    `json:"canonical_url"`
	Name           string    `json:"name"`
	PhotoURL       string    `json:"photo_url"`
	Category       string    `json:"category,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	LocationMarket string    `json:"location_market,omitempty"`
	LeagueID       int64     `json:"league_id,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	AdditionalInfo []factDTO `json:"additional_info"`
	UpdatedAtUTC   string    `json:"updated_at_utc"`
}

type leagueDTO struct {
	ID             int64     `json:"id"`
	CanonicalURL   string    `json:"canonical_url"`
	Name           string    `json:"name"`
	PhotoURL       string    `json:"photo_url"`
	Category       string    `json:"category,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	LocationMarket string    `json:"location_market,omitempty"`
	AdditionalInfo []factDTO `json:"additional_info"`
	UpdatedAtUTC   string    `json:"updated_at_utc"`
}

func athleteToDTO(v athlete.Athlete) athleteDTO {
	out := athleteDTO{
		ID:               v.ID,
		CanonicalURL:     v.CanonicalURL,
		Slug:             v.Slug(),
		Name:             v.Name,
		PhotoURL:         v.PhotoURL,
		Category:         v.Category,
		Gender:           string(v.Gender),
		LocationMarket:   v.LocationMarket,
		DomesticMarket:   v.DomesticMarket,
		MarketExport:     v.MarketExport(),
		TeamName:         v.TeamName,
		TeamID:           v.TeamID,
		International:    v.International,
		TwitterFollowers: v.TwitterFollowers,
		TwitterInfo:      v.TwitterInfo,
		YouTubeInfo:      v.YouTubeInfo,
		AdditionalInfo:   factsToDTO(v.AdditionalInfo),
		UpdatedAtUTC:     formatTime(v.UpdatedAt),
	}
	if !v.Birthday.IsZero() {
		out.Birthday = v.Birthday.Format(time.DateOnly)
		out.Age = v.Age(time.Now())
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	out := teamDTO{
		ID:             v.ID,
		CanonicalURL:   v.CanonicalURL,
		Name:           v.Name,
		PhotoURL:       v.PhotoURL,
		Category:       v.Category,
		Gender:         v.Gender,
		LocationMarket: v.LocationMarket,
		LeagueID:       v.LeagueID,
		AdditionalInfo: factsToDTO(v.AdditionalInfo),
		UpdatedAtUTC:   formatTime(v.UpdatedAt),
	}
	if v.Coordinates != nil {
		lat, lng := v.Coordinates.Lat, v.Coordinates.Lng
		out.Latitude = &lat
		out.Longitude = &lng
	}
	return out
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:             v.ID,
		CanonicalURL:   v.CanonicalURL,
		Name:           v.Name,
		PhotoURL:       v.PhotoURL,
		Category:       v.Category,
		Gender:         v.Gender,
		LocationMarket: v.LocationMarket,
		AdditionalInfo: factsToDTO(v.AdditionalInfo),
		UpdatedAtUTC:   formatTime(v.UpdatedAt),
	}
}

// factsToDTO keeps the card's row order.
func factsToDTO(sheet *entity.FactSheet) []factDTO {
	facts := sheet.Facts()
	out := make([]factDTO, 0, len(facts))
	for _, f := range facts {
		out = append(out, factDTO{Key: f.Key, Value: f.Value})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
