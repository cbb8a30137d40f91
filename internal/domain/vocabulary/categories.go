// Package vocabulary holds the controlled vocabularies used to normalize
// free text taken from info cards.
package vocabulary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sport categories. The values double as keys of the roster parsing table.
const (
	CategoryFootball           = "Football"
	CategoryAmericanFootball   = "American Football"
	CategoryAustralianFootball = "Australian Football"
	CategoryBaseball           = "Baseball"
	CategoryBasketball         = "Basketball"
	CategoryCricket            = "Cricket"
	CategoryCycling            = "Cycling"
	CategoryHandball           = "Handball"
	CategoryIceHockey          = "Ice Hockey"
	CategoryRugby              = "Rugby"
	CategoryTennis             = "Tennis"
	CategoryGolf               = "Golf"
	CategoryBoxing             = "Boxing"
	CategoryVolleyball         = "Volleyball"
	CategoryMotorsport         = "Motorsport"
	CategoryMMA                = "MMA"
	CategoryAthletics          = "Athletics"
)

var categories = []string{
	CategoryFootball,
	CategoryAmericanFootball,
	CategoryAustralianFootball,
	CategoryBaseball,
	CategoryBasketball,
	CategoryCricket,
	CategoryCycling,
	CategoryHandball,
	CategoryIceHockey,
	CategoryRugby,
	CategoryTennis,
	CategoryGolf,
	CategoryBoxing,
	CategoryVolleyball,
	CategoryMotorsport,
	CategoryMMA,
	CategoryAthletics,
}

// wikiCategories maps an info card sport value, first letter upper and the
// rest lower case, to a category.
var wikiCategories = map[string]string{
	"Football":                  CategoryFootball,
	"Association football":      CategoryFootball,
	"Soccer":                    CategoryFootball,
	"American football":         CategoryAmericanFootball,
	"Australian rules football": CategoryAustralianFootball,
	"Australian football":       CategoryAustralianFootball,
	"Afl":                       CategoryAustralianFootball,
	"Baseball":                  CategoryBaseball,
	"Mlb":                       CategoryBaseball,
	"Basketball":                CategoryBasketball,
	"Nba":                       CategoryBasketball,
	"Cricket":                   CategoryCricket,
	"Cycling":                   CategoryCycling,
	"Road cycling":              CategoryCycling,
	"Road bicycle racing":       CategoryCycling,
	"Track cycling":             CategoryCycling,
	"Handball":                  CategoryHandball,
	"Ice hockey":                CategoryIceHockey,
	"Nhl":                       CategoryIceHockey,
	"Rugby":                     CategoryRugby,
	"Rugby union":               CategoryRugby,
	"Rugby league":              CategoryRugby,
	"Tennis":                    CategoryTennis,
	"Golf":                      CategoryGolf,
	"Boxing":                    CategoryBoxing,
	"Volleyball":                CategoryVolleyball,
	"Formula one":               CategoryMotorsport,
	"Motorsport":                CategoryMotorsport,
	"Mixed martial arts":        CategoryMMA,
	"Athletics":                 CategoryAthletics,
	"Track and field":           CategoryAthletics,
}

// Categories lists the supported sport categories.
func Categories() []string {
	return append([]string(nil), categories...)
}

func IsCategory(v string) bool {
	for _, c := range categories {
		if c == v {
			return true
		}
	}
	return false
}

// CategoryFromWiki maps a raw info card value (Sport, Discipline, League).
func CategoryFromWiki(raw string) (string, bool) {
	category, ok := wikiCategories[capitalize(strings.TrimSpace(raw))]
	return category, ok
}

// IsNBA reports the league value that pins an athlete's domestic market to US.
func IsNBA(raw string) bool {
	return strings.TrimSpace(raw) == "NBA"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
