package querybuilder

import (
	"reflect"
	"testing"
)

type built interface {
	ToSQL() (string, []any, error)
}

func TestToSQL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		builder   built
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "select roster",
			builder: Select("id", "name").From("athletes").
				Where(Eq("category", "Football"), IsNull("team_id")).
				OrderBy("id").Limit(10),
			wantQuery: "SELECT id, name FROM athletes WHERE category = $1 AND team_id IS NULL ORDER BY id LIMIT 10",
			wantArgs:  []any{"Football"},
		},
		{
			name: "keyset page with expression",
			builder: Select("*").From("teams").
				Where(Gt("id", int64(40)), Expr("COALESCE(additional_info->>?, '') <> ''", "League")).
				OrderBy("id").Limit(25),
			wantQuery: "SELECT * FROM teams WHERE id > $1 AND COALESCE(additional_info->>$2, '') <> '' ORDER BY id LIMIT 25",
			wantArgs:  []any{int64(40), "League"},
		},
		{
			name:      "expression without values keeps question marks",
			builder:   Select("id").From("athletes").Where(Expr("twitter_info ?| array['id']")),
			wantQuery: "SELECT id FROM athletes WHERE twitter_info ?| array['id']",
		},
		{
			name: "update with fill expression",
			builder: Update("teams").
				Set("name", "new").
				SetExpr("stadium", "COALESCE(NULLIF(stadium, ''), ?)", "Anfield").
				SetExpr("updated_at", "NOW()").
				Where(Eq("id", int64(7)), IsNull("league_id")),
			wantQuery: "UPDATE teams SET name = $1, stadium = COALESCE(NULLIF(stadium, ''), $2), updated_at = NOW() WHERE id = $3 AND league_id IS NULL",
			wantArgs:  []any{"new", "Anfield", int64(7)},
		},
		{
			name: "update returning",
			builder: Update("athletes").
				Set("name", "Joe Smith").
				SetExpr("updated_at", "NOW()").
				Where(Eq("id", int64(3))).
				Suffix(" RETURNING updated_at "),
			wantQuery: "UPDATE athletes SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at",
			wantArgs:  []any{"Joe Smith", int64(3)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			query, args, err := tc.builder.ToSQL()
			if err != nil {
				t.Fatalf("ToSQL: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.wantQuery, query)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("unexpected args: want %+v got %+v", tc.wantArgs, args)
			}
		})
	}
}

func TestToSQL_Incomplete(t *testing.T) {
	t.Parallel()

	for name, b := range map[string]built{
		"select without table": Select("id"),
		"select without cols":  Select().From("athletes"),
		"update without sets":  Update("athletes").Where(Eq("id", 1)),
	} {
		if _, _, err := b.ToSQL(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		URL      string `db:"canonical_url"`
		Name     string `db:"name,omitempty"`
		Ignored  string `db:"-"`
		Untagged string
		internal string `db:"internal"`
	}

	query, args, err := InsertModel("leagues", row{URL: "https://en.wikipedia.org/wiki/Premier_League", Name: "Premier League", internal: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}
	want := "INSERT INTO leagues (canonical_url, name) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[1] != "Premier League" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsBadModels(t *testing.T) {
	t.Parallel()

	var nilRow *struct {
		ID int `db:"id"`
	}
	for name, model := range map[string]any{
		"non struct": "not-a-struct",
		"nil ptr":    nilRow,
		"no columns": struct{ Name string }{},
	} {
		if _, _, err := InsertModel("athletes", model, ""); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
