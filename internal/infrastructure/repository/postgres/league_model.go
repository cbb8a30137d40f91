package postgres

import "time"

const leagueColumns = "id, canonical_url, name, photo_url, category, gender, location_market, additional_info, created_at, updated_at"

type leagueTableModel struct {
	ID             int64     `db:"id"`
	CanonicalURL   string    `db:"canonical_url"`
	Name           string    `db:"name"`
	PhotoURL       string    `db:"photo_url"`
	Category       string    `db:"category"`
	Gender         string    `db:"gender"`
	LocationMarket string    `db:"location_market"`
	AdditionalInfo []byte    `db:"additional_info"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	CanonicalURL   string `db:"canonical_url"`
	Name           string `db:"name"`
	PhotoURL       string `db:"photo_url"`
	Category       string `db:"category"`
	Gender         string `db:"gender"`
	LocationMarket string `db:"location_market"`
	AdditionalInfo string `db:"additional_info"`
}
