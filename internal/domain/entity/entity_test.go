package entity

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestFactSheet_LastWriteWinsAndOrderIsStable(t *testing.T) {
	t.Parallel()

	s := NewFactSheet()
	s.Set("Born", "1 May 1990")
	s.Set("Position", "Forward")
	s.Set("Born", "2 May 1990")
	s.Set("Height", "")

	got := s.Facts()
	if len(got) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(got))
	}
	if got[0].Key != "Born" || got[0].Value != "2 May 1990" {
		t.Fatalf("unexpected first fact: %+v", got[0])
	}
	if v, ok := s.Get("Height"); !ok || v != "" {
		t.Fatalf("empty values must be kept, got %q ok=%v", v, ok)
	}
	if key, v := s.First("Ground", "Height", "Position"); key != "Position" || v != "Forward" {
		t.Fatalf("unexpected first non-empty: %s=%s", key, v)
	}
}

func TestFactSheet_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewFactSheet()
	s.Set("League", "Premier League")
	raw, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out FactSheet
	if err := out.UnmarshalJSON(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, _ := out.Get("League"); v != "Premier League" {
		t.Fatalf("unexpected league: %q", v)
	}
}

func TestFactSheet_JSONKeepsCardOrder(t *testing.T) {
	t.Parallel()

	s := NewFactSheet()
	for _, key := range []string{"Website", "Born", "Ground", "Arena", "Capacity", "League", "Coach"} {
		s.Set(key, strings.ToLower(key))
	}
	s.Set("Born", "1 May 1990")

	want := `{"Website":"website","Born":"1 May 1990","Ground":"ground","Arena":"arena","Capacity":"capacity","League":"league","Coach":"coach"}`
	for range 20 {
		raw, err := s.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(raw) != want {
			t.Fatalf("unexpected json:\nwant: %s\ngot:  %s", want, raw)
		}
	}

	raw, err := NewFactSheet().MarshalJSON()
	if err != nil || string(raw) != "{}" {
		t.Fatalf("empty sheet = %s, %v", raw, err)
	}
}

func TestFiller_OnlyFillsEmptyFields(t *testing.T) {
	t.Parallel()

	category := "Football"
	market := ""
	var teamID int64
	var born time.Time
	international := false

	var fl Filler
	fl.String("category", &category, "Basketball")
	fl.String("domestic_market", &market, "DE")
	fl.ID("team_id", &teamID, 12)
	fl.Time("birthday", &born, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
	fl.Flag("international", &international, false)

	if category != "Football" {
		t.Fatalf("populated category was overwritten: %s", category)
	}
	if market != "DE" || teamID != 12 || born.IsZero() {
		t.Fatalf("empty fields were not filled: market=%s team=%d born=%s", market, teamID, born)
	}
	want := []string{"domestic_market", "team_id", "birthday"}
	if fmt.Sprint(fl.Changed()) != fmt.Sprint(want) {
		t.Fatalf("unexpected changed list: %v", fl.Changed())
	}
}

func TestFacts_MergeKeepsReceiverValues(t *testing.T) {
	t.Parallel()

	team := Facts{Category: "Football", TeamName: "Arsenal F.C.", TeamID: 4}
	page := Facts{Category: "Basketball", Name: "Joe Smith", TeamName: "Other"}

	got := team.Merge(page)
	if got.Category != "Football" || got.TeamName != "Arsenal F.C." {
		t.Fatalf("team facts must win: %+v", got)
	}
	if got.Name != "Joe Smith" {
		t.Fatalf("page facts must fill gaps: %+v", got)
	}
}

func TestCanonicalURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		page string
		href string
		want string
	}{
		{"relative", "https://en.wikipedia.org/wiki/Arsenal_F.C.", "/wiki/Player_X", "https://en.wikipedia.org/wiki/Player_X"},
		{"absolute", "https://en.wikipedia.org/wiki/A", "https://de.wikipedia.org/wiki/B", "https://de.wikipedia.org/wiki/B"},
		{"protocol relative", "https://en.wikipedia.org/wiki/A", "//en.wikipedia.org/wiki/C", "https://en.wikipedia.org/wiki/C"},
		{"fragment dropped", "https://en.wikipedia.org/wiki/A", "/wiki/D#Career", "https://en.wikipedia.org/wiki/D"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanonicalURL(tc.page, tc.href)
			if err != nil {
				t.Fatalf("canonical url: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}

	if _, err := CanonicalURL("not a url", "/wiki/X"); err == nil {
		t.Fatalf("expected error for relative page url")
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	if got := Slug("https://en.wikipedia.org/wiki/Lionel_Messi"); got != "Lionel_Messi" {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestIsFieldCoercion(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("update athlete: %w", &FieldCoercionError{Column: "twitter_info", Err: errors.New("22P02")})
	got, ok := IsFieldCoercion(err)
	if !ok || got.Column != "twitter_info" {
		t.Fatalf("expected coercion error, got %v", err)
	}
	if _, ok := IsFieldCoercion(ErrDuplicateKey); ok {
		t.Fatalf("duplicate key is not a coercion error")
	}
}
