package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/team"
	qb "github.com/mikekeda/athletes/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *TeamRepository) FindByCanonicalURL(ctx context.Context, canonicalURL string) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("canonical_url", canonicalURL))
}

func (r *TeamRepository) getOne(ctx context.Context, where qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams").Where(where).Limit(1).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	additionalInfo, err := encodeFactSheet(t.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("encode team additional info: %w", err)
	}
	model := teamInsertModel{
		CanonicalURL:   t.CanonicalURL,
		Name:           t.Name,
		PhotoURL:       t.PhotoURL,
		Category:       t.Category,
		Gender:         t.Gender,
		LocationMarket: t.LocationMarket,
		LeagueID:       nullableInt64(t.LeagueID),
		AdditionalInfo: additionalInfo,
	}
	if t.Coordinates != nil {
		model.Latitude = &t.Coordinates.Lat
		model.Longitude = &t.Coordinates.Lng
	}

	query, args, err := qb.InsertModel("teams", model, "RETURNING id, created_at, updated_at")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("insert team url=%s: %w", t.CanonicalURL, classifyError(err))
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	additionalInfo, err := encodeFactSheet(t.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("encode team additional info: %w", err)
	}

	b := qb.Update("teams")
	fillString(b, "name", t.Name)
	fillString(b, "photo_url", t.PhotoURL)
	fillString(b, "category", t.Category)
	fillString(b, "gender", t.Gender)
	fillString(b, "location_market", t.LocationMarket)
	fillNullable(b, "league_id", nullableInt64(t.LeagueID))
	if t.Coordinates != nil {
		// Both halves move together so a point is never half-written.
		b.SetExpr("latitude", "CASE WHEN latitude IS NULL OR longitude IS NULL THEN ? ELSE latitude END", t.Coordinates.Lat)
		b.SetExpr("longitude", "CASE WHEN latitude IS NULL OR longitude IS NULL THEN ? ELSE longitude END", t.Coordinates.Lng)
	}
	fillJSON(b, "additional_info", additionalInfo)
	query, args, err := b.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", t.ID)).
		Suffix("RETURNING updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&t.UpdatedAt); err != nil {
		return fmt.Errorf("update team id=%d: %w", t.ID, classifyError(err))
	}
	return nil
}

func (r *TeamRepository) ListWithLeagueFact(ctx context.Context, afterID int64, limit int) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		Where(
			qb.Gt("id", afterID),
			qb.Expr("COALESCE(additional_info->>'League', '') <> ''"),
		).
		OrderBy("id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams with league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams with league: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) SetLeague(ctx context.Context, teamID, leagueID int64) (bool, error) {
	query, args, err := qb.Update("teams").
		Set("league_id", leagueID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID), qb.IsNull("league_id")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set team league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set team league team_id=%d: %w", teamID, classifyError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set team league rows affected: %w", err)
	}
	return affected > 0, nil
}

func teamFromRow(row teamTableModel) team.Team {
	t := team.Team{
		ID:             row.ID,
		CanonicalURL:   row.CanonicalURL,
		Name:           row.Name,
		PhotoURL:       row.PhotoURL,
		Category:       row.Category,
		Gender:         row.Gender,
		LocationMarket: row.LocationMarket,
		LeagueID:       nullInt64ToInt64(row.LeagueID),
		AdditionalInfo: decodeFactSheet(row.AdditionalInfo),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		t.Coordinates = &entity.Coordinates{Lat: row.Latitude.Float64, Lng: row.Longitude.Float64}
	}
	return t
}
