package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikekeda/athletes/internal/domain/vocabulary"
)

// RosterLink is a player reference found in a roster row.
type RosterLink struct {
	Name string
	Href string
}

// linkStrategy picks candidate player anchors out of a roster table.
type linkStrategy func(table *goquery.Selection) []*goquery.Selection

func selectAnchors(selectors ...string) linkStrategy {
	return func(table *goquery.Selection) []*goquery.Selection {
		for _, selector := range selectors {
			found := table.Find(selector)
			if found.Length() == 0 {
				continue
			}
			out := make([]*goquery.Selection, 0, found.Length())
			found.Each(func(_ int, a *goquery.Selection) { out = append(out, a) })
			return out
		}
		return nil
	}
}

var rowStrategies = map[string]linkStrategy{
	vocabulary.CategoryAmericanFootball:   selectAnchors("td > ul > li > a"),
	vocabulary.CategoryBaseball:           selectAnchors("td > ul > li > a"),
	vocabulary.CategoryAustralianFootball: selectAnchors("td > ul > li a"),
	vocabulary.CategoryHandball:           selectAnchors("td > ul > li a"),
	vocabulary.CategoryIceHockey:          selectAnchors("tr > td span.vcard a"),
	vocabulary.CategoryRugby:              selectAnchors("tr > td span.fn > a", "tr > td ul > li a"),
	vocabulary.CategoryCycling:            selectAnchors("tr > td span a"),
	vocabulary.CategoryCricket:            selectAnchors("tr > td:nth-of-type(2) > a"),
}

// ExtractLinks returns the player links of a roster table in row order.
// Links whose text is not a multi-word name are dropped.
func ExtractLinks(table *goquery.Selection, category string) []RosterLink {
	if table == nil {
		return nil
	}
	strategy, ok := rowStrategies[category]
	if !ok {
		strategy = genericRows
	}

	var out []RosterLink
	for _, a := range strategy(table) {
		name := cleanText(a.Text())
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || !IsPlayerName(name) {
			continue
		}
		out = append(out, RosterLink{Name: name, Href: href})
	}
	return out
}

// IsPlayerName tells a person's full name from single-word links such as
// countries or positions.
func IsPlayerName(text string) bool {
	return len(strings.Fields(text)) > 1
}

// genericRows checks the third and fourth cell of every wide row for a
// player anchor. Flag icons, country codes and country names are passed
// over so the player in the next cell is still reached.
func genericRows(table *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() <= 3 {
			return
		}
		for _, i := range []int{2, 3} {
			a := cellAnchor(cells.Eq(i))
			if a == nil {
				continue
			}
			if text := cleanText(a.Text()); !IsPlayerName(text) || vocabulary.IsRosterCountryName(text) {
				continue
			}
			out = append(out, a)
			return
		}
	})
	return out
}

func cellAnchor(cell *goquery.Selection) *goquery.Selection {
	if a := cell.ChildrenFiltered("a").First(); a.Length() > 0 {
		return a
	}
	if a := cell.ChildrenFiltered("span").First().ChildrenFiltered("a").First(); a.Length() > 0 {
		return a
	}
	if a := cell.Find("span.vcard a").First(); a.Length() > 0 {
		return a
	}
	return nil
}
