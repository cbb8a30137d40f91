package postgres

import (
	"database/sql"
	"time"
)

const athleteColumns = "id, canonical_url, name, photo_url, category, gender, location_market, domestic_market, birthday, " +
	"team_name, team_id, international, additional_info, twitter_followers, twitter_info, youtube_info, created_at, updated_at"

type athleteTableModel struct {
	ID               int64         `db:"id"`
	CanonicalURL     string        `db:"canonical_url"`
	Name             string        `db:"name"`
	PhotoURL         string        `db:"photo_url"`
	Category         string        `db:"category"`
	Gender           string        `db:"gender"`
	LocationMarket   string        `db:"location_market"`
	DomesticMarket   string        `db:"domestic_market"`
	Birthday         sql.NullTime  `db:"birthday"`
	TeamName         string        `db:"team_name"`
	TeamID           sql.NullInt64 `db:"team_id"`
	International    bool          `db:"international"`
	AdditionalInfo   []byte        `db:"additional_info"`
	TwitterFollowers int64         `db:"twitter_followers"`
	TwitterInfo      []byte        `db:"twitter_info"`
	YouTubeInfo      []byte        `db:"youtube_info"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

type athleteInsertModel struct {
	CanonicalURL     string     `db:"canonical_url"`
	Name             string     `db:"name"`
	PhotoURL         string     `db:"photo_url"`
	Category         string     `db:"category"`
	Gender           string     `db:"gender"`
	LocationMarket   string     `db:"location_market"`
	DomesticMarket   string     `db:"domestic_market"`
	Birthday         *time.Time `db:"birthday"`
	TeamName         string     `db:"team_name"`
	TeamID           *int64     `db:"team_id"`
	International    bool       `db:"international"`
	AdditionalInfo   string     `db:"additional_info"`
	TwitterFollowers int64      `db:"twitter_followers"`
	TwitterInfo      string     `db:"twitter_info"`
	YouTubeInfo      string     `db:"youtube_info"`
}
