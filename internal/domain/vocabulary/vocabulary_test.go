package vocabulary

import "testing"

func TestCategoryFromWiki(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Association football": CategoryFootball,
		"ICE HOCKEY":           CategoryIceHockey,
		"Rugby union":          CategoryRugby,
		"NBA":                  CategoryBasketball,
	}
	for raw, want := range cases {
		got, ok := CategoryFromWiki(raw)
		if !ok || got != want {
			t.Fatalf("CategoryFromWiki(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := CategoryFromWiki("Quidditch"); ok {
		t.Fatalf("unknown sport must not map")
	}
}

func TestMarketLookups(t *testing.T) {
	t.Parallel()

	if code, ok := MarketFromNationality("German"); !ok || code != "DE" {
		t.Fatalf("German -> %q %v", code, ok)
	}
	if _, ok := MarketFromNationality("Atlantean"); ok {
		t.Fatalf("Atlantean must not map")
	}
	if code, ok := MarketFromCountry("England"); !ok || code != "GB" {
		t.Fatalf("England -> %q %v", code, ok)
	}
	if code, ok := MarketFromCountry("Brazil"); !ok || code != "BR" {
		t.Fatalf("Brazil -> %q %v", code, ok)
	}
	if !IsMarket("us") || IsMarket("XX") {
		t.Fatalf("unexpected market check")
	}
}

func TestIsRosterCountryName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Brazil", "United States", "Ivory Coast", "Germany"} {
		if !IsRosterCountryName(name) {
			t.Fatalf("%q should be excluded", name)
		}
	}
	if IsRosterCountryName("Joe Smith") {
		t.Fatalf("player names must not be excluded")
	}
}
