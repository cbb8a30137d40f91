package wiki

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/mikekeda/athletes/internal/domain/vocabulary"
)

// rosterAnchors are the section ids seen on roster pages, most common first.
var rosterAnchors = []string{
	"Current_squad",
	"Current_roster",
	"Roster",
	"First-team_squad",
	"First_team_squad",
	"Team_squad",
	"Squad",
	"Players",
	"Current_Squad",
	"Current_roster_and_coaching_staff",
	"First_Team_Squad",
	"Current_squad[11]",
	"Current_players",
	"Current_first_team_squad",
	"Current_roster_and_Baseball_Hall_of_Fame",
	"Team_roster",
	"Team_roster_2018",
	"2018_squad",
	"Current_playing_squad",
	"Playing_squad",
	"Current_playing_list_and_coaches",
	"Current_playing_lists",
}

// LocateRoster finds the player table under the first known roster heading.
func LocateRoster(doc *Document, category string) (*goquery.Selection, bool) {
	for _, id := range rosterAnchors {
		anchor := doc.Selection().Find(`[id="` + id + `"]`).First()
		if anchor.Length() == 0 {
			continue
		}
		if table := rosterTable(anchor, category); table.Length() > 0 {
			return table, true
		}
	}
	return nil, false
}

func rosterTable(anchor *goquery.Selection, category string) *goquery.Selection {
	heading := anchor.Parent()
	if wrapper := heading.Parent(); wrapper.HasClass("mw-heading") {
		heading = wrapper
	}

	if category == vocabulary.CategoryHandball {
		container := heading.NextAllFiltered("table, div").First()
		if nested := container.Find("table").First(); nested.Length() > 0 {
			return nested
		}
		return container.Filter("table")
	}
	return heading.NextAllFiltered("table").First()
}
