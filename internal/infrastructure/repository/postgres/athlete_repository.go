package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	qb "github.com/mikekeda/athletes/internal/platform/querybuilder"
)

type AthleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func (r *AthleteRepository) GetByID(ctx context.Context, id int64) (athlete.Athlete, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *AthleteRepository) FindByCanonicalURL(ctx context.Context, canonicalURL string) (athlete.Athlete, bool, error) {
	return r.getOne(ctx, qb.Eq("canonical_url", canonicalURL))
}

func (r *AthleteRepository) getOne(ctx context.Context, where qb.Condition) (athlete.Athlete, bool, error) {
	query, args, err := qb.Select(athleteColumns).From("athletes").Where(where).Limit(1).ToSQL()
	if err != nil {
		return athlete.Athlete{}, false, fmt.Errorf("build select athlete query: %w", err)
	}

	var row athleteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return athlete.Athlete{}, false, nil
		}
		return athlete.Athlete{}, false, fmt.Errorf("select athlete: %w", err)
	}
	return athleteFromRow(row), true, nil
}

func (r *AthleteRepository) Create(ctx context.Context, a *athlete.Athlete) error {
	model, err := athleteInsertFromDomain(a)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("athletes", model, "RETURNING id, created_at, updated_at")
	if err != nil {
		return fmt.Errorf("build insert athlete query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert athlete url=%s: %w", a.CanonicalURL, classifyError(err))
	}
	return nil
}

// Update persists the fill-once fields of a by id.
func (r *AthleteRepository) Update(ctx context.Context, a *athlete.Athlete) error {
	additionalInfo, err := encodeFactSheet(a.AdditionalInfo)
	if err != nil {
		return fmt.Errorf("encode athlete additional info: %w", err)
	}

	b := qb.Update("athletes")
	fillString(b, "name", a.Name)
	fillString(b, "photo_url", a.PhotoURL)
	fillString(b, "category", a.Category)
	fillString(b, "gender", string(a.Gender))
	fillString(b, "location_market", a.LocationMarket)
	fillString(b, "domestic_market", a.DomesticMarket)
	fillNullable(b, "birthday", nullableTime(a.Birthday))
	fillString(b, "team_name", a.TeamName)
	fillNullable(b, "team_id", nullableInt64(a.TeamID))
	fillFlag(b, "international", a.International)
	fillJSON(b, "additional_info", additionalInfo)
	query, args, err := b.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", a.ID)).
		Suffix("RETURNING updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update athlete query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&a.UpdatedAt); err != nil {
		return fmt.Errorf("update athlete id=%d: %w", a.ID, classifyError(err))
	}
	return nil
}

// UpdateSocial overwrites the social counters; they are refreshed on every sync.
func (r *AthleteRepository) UpdateSocial(ctx context.Context, a *athlete.Athlete) error {
	twitterInfo, err := encodeJSONMap(a.TwitterInfo)
	if err != nil {
		return fmt.Errorf("encode twitter info: %w", err)
	}
	youtubeInfo, err := encodeJSONMap(a.YouTubeInfo)
	if err != nil {
		return fmt.Errorf("encode youtube info: %w", err)
	}

	query, args, err := qb.Update("athletes").
		Set("twitter_followers", a.TwitterFollowers).
		SetExpr("twitter_info", "?::jsonb", twitterInfo).
		SetExpr("youtube_info", "?::jsonb", youtubeInfo).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", a.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update athlete social query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update athlete social id=%d: %w", a.ID, classifyError(err))
	}
	return nil
}

var athleteBlobColumns = map[string]struct{}{
	athlete.ColumnAdditionalInfo: {},
	athlete.ColumnTwitterInfo:    {},
	athlete.ColumnYouTubeInfo:    {},
}

func (r *AthleteRepository) ListAfter(ctx context.Context, afterID int64, limit int, filter athlete.ListFilter) ([]athlete.Athlete, error) {
	conditions := []qb.Condition{qb.Gt("id", afterID)}
	if filter.EmptyBlob != "" {
		if _, ok := athleteBlobColumns[filter.EmptyBlob]; !ok {
			return nil, fmt.Errorf("unknown athlete blob column %q", filter.EmptyBlob)
		}
		conditions = append(conditions, qb.Expr("COALESCE("+filter.EmptyBlob+", '{}'::jsonb) = '{}'::jsonb"))
	}

	query, args, err := qb.Select(athleteColumns).From("athletes").
		Where(conditions...).
		OrderBy("id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list athletes query: %w", err)
	}
	return r.selectAthletes(ctx, query, args)
}

func (r *AthleteRepository) ListByTeam(ctx context.Context, teamID int64) ([]athlete.Athlete, error) {
	query, args, err := qb.Select(athleteColumns).From("athletes").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list athletes by team query: %w", err)
	}
	return r.selectAthletes(ctx, query, args)
}

func (r *AthleteRepository) selectAthletes(ctx context.Context, query string, args []any) ([]athlete.Athlete, error) {
	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select athletes: %w", err)
	}
	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, athleteFromRow(row))
	}
	return out, nil
}

func athleteInsertFromDomain(a *athlete.Athlete) (athleteInsertModel, error) {
	additionalInfo, err := encodeFactSheet(a.AdditionalInfo)
	if err != nil {
		return athleteInsertModel{}, fmt.Errorf("encode athlete additional info: %w", err)
	}
	twitterInfo, err := encodeJSONMap(a.TwitterInfo)
	if err != nil {
		return athleteInsertModel{}, fmt.Errorf("encode twitter info: %w", err)
	}
	youtubeInfo, err := encodeJSONMap(a.YouTubeInfo)
	if err != nil {
		return athleteInsertModel{}, fmt.Errorf("encode youtube info: %w", err)
	}
	return athleteInsertModel{
		CanonicalURL:     a.CanonicalURL,
		Name:             a.Name,
		PhotoURL:         a.PhotoURL,
		Category:         a.Category,
		Gender:           string(a.Gender),
		LocationMarket:   a.LocationMarket,
		DomesticMarket:   a.DomesticMarket,
		Birthday:         nullableTime(a.Birthday),
		TeamName:         a.TeamName,
		TeamID:           nullableInt64(a.TeamID),
		International:    a.International,
		AdditionalInfo:   additionalInfo,
		TwitterFollowers: a.TwitterFollowers,
		TwitterInfo:      twitterInfo,
		YouTubeInfo:      youtubeInfo,
	}, nil
}

func athleteFromRow(row athleteTableModel) athlete.Athlete {
	return athlete.Athlete{
		ID:               row.ID,
		CanonicalURL:     row.CanonicalURL,
		Name:             row.Name,
		PhotoURL:         row.PhotoURL,
		Category:         row.Category,
		Gender:           athlete.Gender(row.Gender),
		LocationMarket:   row.LocationMarket,
		DomesticMarket:   row.DomesticMarket,
		Birthday:         nullTimeToTime(row.Birthday),
		TeamName:         row.TeamName,
		TeamID:           nullInt64ToInt64(row.TeamID),
		International:    row.International,
		AdditionalInfo:   decodeFactSheet(row.AdditionalInfo),
		TwitterFollowers: row.TwitterFollowers,
		TwitterInfo:      decodeJSONMap(row.TwitterInfo),
		YouTubeInfo:      decodeJSONMap(row.YouTubeInfo),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
