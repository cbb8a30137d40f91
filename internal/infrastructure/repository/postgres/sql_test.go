package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	qb "github.com/mikekeda/athletes/internal/platform/querybuilder"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	dup := classifyError(fmt.Errorf("exec: %w", &pq.Error{Code: "23505", Constraint: "athletes_canonical_url_key"}))
	if !errors.Is(dup, entity.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", dup)
	}

	coerce := classifyError(&pq.Error{Code: "22007", Column: "birthday"})
	fieldErr, ok := entity.IsFieldCoercion(coerce)
	if !ok {
		t.Fatalf("expected field coercion error, got %v", coerce)
	}
	if fieldErr.Column != "birthday" {
		t.Fatalf("unexpected column: %q", fieldErr.Column)
	}

	other := errors.New("connection reset")
	if got := classifyError(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if got := classifyError(&pq.Error{Code: "40001"}); errors.Is(got, entity.ErrDuplicateKey) {
		t.Fatalf("serialization failure must not classify as duplicate")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unexpected not found")
	}
}

func TestFillHelpersBuildGuardedUpdate(t *testing.T) {
	t.Parallel()

	b := qb.Update("athletes")
	fillString(b, "name", "Joe Root")
	fillNullable(b, "team_id", nullableInt64(7))
	fillFlag(b, "international", true)
	fillJSON(b, "additional_info", `{"Role":"Batsman"}`)
	query, args, err := b.Where(qb.Eq("id", int64(3))).ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, want := range []string{
		"name = COALESCE(NULLIF(name, ''), $1)",
		"team_id = COALESCE(team_id, $2)",
		"international = international OR $3",
		"additional_info = CASE WHEN additional_info IS NULL OR additional_info = '{}'::jsonb THEN $4::jsonb ELSE additional_info END",
		"WHERE id = $5",
	} {
		if !strings.Contains(query, want) {
			t.Fatalf("expected %q in query:\n%s", want, query)
		}
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
}

func TestNullableHelpers(t *testing.T) {
	t.Parallel()

	if nullableInt64(0) != nil {
		t.Fatalf("zero id must be NULL")
	}
	if optionalString("") != nil {
		t.Fatalf("empty string must be NULL")
	}
	if got := nullInt64ToInt64(sql.NullInt64{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestFactSheetRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := encodeFactSheet(nil)
	if err != nil || raw != "{}" {
		t.Fatalf("expected empty object, got %q err=%v", raw, err)
	}

	sheet := entity.NewFactSheet()
	sheet.Set("League", "Premier League")
	raw, err = encodeFactSheet(sheet)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := decodeFactSheet([]byte(raw))
	if v, _ := decoded.Get("League"); v != "Premier League" {
		t.Fatalf("unexpected league fact: %q", v)
	}
	if decodeFactSheet([]byte("{}")) != nil {
		t.Fatalf("empty blob must decode to nil")
	}
}

func TestAthleteFromRow(t *testing.T) {
	t.Parallel()

	got := athleteFromRow(athleteTableModel{
		ID:          9,
		Name:        "Joe Root",
		Gender:      "male",
		TeamID:      sql.NullInt64{Int64: 4, Valid: true},
		TwitterInfo: []byte(`{"id":"1"}`),
	})
	if got.TeamID != 4 || got.Gender != athlete.GenderMale {
		t.Fatalf("unexpected athlete: %+v", got)
	}
	if got.TwitterInfo["id"] != "1" {
		t.Fatalf("unexpected twitter info: %v", got.TwitterInfo)
	}
	if !got.Birthday.IsZero() || got.YouTubeInfo != nil {
		t.Fatalf("expected empty optional fields: %+v", got)
	}
}
