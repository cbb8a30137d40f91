package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/domain/league"
	qb "github.com/mikekeda/athletes/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *LeagueRepository) FindByCanonicalURL(ctx context.Context, canonicalURL string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("canonical_url", canonicalURL))
}

func (r *LeagueRepository) getOne(ctx context.Context, where qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns).From("leagues").Where(where).Limit(1).ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league: %w", err)
	}
	return league.League{
		ID:             row.ID,
		CanonicalURL:   row.CanonicalURL,
		Name:           row.Name,
		PhotoURL:       row.PhotoURL,
		Category:       row.Category,
		Gender:         row.Gender,
		LocationMarket: row.LocationMarket,
		AdditionalInfo: decodeFactSheet(row.AdditionalInfo),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l *league.League) error {
	additionalInfo, err := encodeFactSheet(l.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("encode league additional info: %w", err)
	}
	query, args, err := qb.InsertModel("leagues", leagueInsertModel{
		CanonicalURL:   l.CanonicalURL,
		Name:           l.Name,
		PhotoURL:       l.PhotoURL,
		Category:       l.Category,
		Gender:         l.Gender,
		LocationMarket: l.LocationMarket,
		AdditionalInfo: additionalInfo,
	}, "RETURNING id, created_at, updated_at")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("insert league url=%s: %w", l.CanonicalURL, classifyError(err))
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, l *league.League) error {
	additionalInfo, err := encodeFactSheet(l.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("encode league additional info: %w", err)
	}

	b := qb.Update("leagues")
	fillString(b, "name", l.Name)
	fillString(b, "photo_url", l.PhotoURL)
	fillString(b, "category", l.Category)
	fillString(b, "gender", l.Gender)
	fillString(b, "location_market", l.LocationMarket)
	fillJSON(b, "additional_info", additionalInfo)
	query, args, err := b.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", l.ID)).
		Suffix("RETURNING updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&l.UpdatedAt); err != nil {
		return fmt.Errorf("update league id=%d: %w", l.ID, classifyError(err))
	}
	return nil
}
