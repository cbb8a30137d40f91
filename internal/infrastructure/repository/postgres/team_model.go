package postgres

import (
	"database/sql"
	"time"
)

const teamColumns = "id, canonical_url, name, photo_url, category, gender, location_market, league_id, " +
	"latitude, longitude, additional_info, created_at, updated_at"

type teamTableModel struct {
	ID             int64           `db:"id"`
	CanonicalURL   string          `db:"canonical_url"`
	Name           string          `db:"name"`
	PhotoURL       string          `db:"photo_url"`
	Category       string          `db:"category"`
	Gender         string          `db:"gender"`
	LocationMarket string          `db:"location_market"`
	LeagueID       sql.NullInt64   `db:"league_id"`
	Latitude       sql.NullFloat64 `db:"latitude"`
	Longitude      sql.NullFloat64 `db:"longitude"`
	AdditionalInfo []byte          `db:"additional_info"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type teamInsertModel struct {
	CanonicalURL   string   `db:"canonical_url"`
	Name           string   `db:"name"`
	PhotoURL       string   `db:"photo_url"`
	Category       string   `db:"category"`
	Gender         string   `db:"gender"`
	LocationMarket string   `db:"location_market"`
	LeagueID       *int64   `db:"league_id"`
	Latitude       *float64 `db:"latitude"`
	Longitude      *float64 `db:"longitude"`
	AdditionalInfo string   `db:"additional_info"`
}
