package vocabulary

import "strings"

// countries maps a two-letter market code to its display name.
var countries = map[string]string{
	"AR": "Argentina",
	"AT": "Austria",
	"AU": "Australia",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CL": "Chile",
	"CM": "Cameroon",
	"CN": "China",
	"CO": "Colombia",
	"CR": "Costa Rica",
	"CZ": "Czechia",
	"DE": "Germany",
	"DK": "Denmark",
	"DO": "Dominican Republic",
	"DZ": "Algeria",
	"EC": "Ecuador",
	"EG": "Egypt",
	"ES": "Spain",
	"FI": "Finland",
	"FR": "France",
	"GB": "United Kingdom",
	"GH": "Ghana",
	"GR": "Greece",
	"HR": "Croatia",
	"HU": "Hungary",
	"IE": "Ireland",
	"IN": "India",
	"IR": "Iran",
	"IS": "Iceland",
	"IT": "Italy",
	"JM": "Jamaica",
	"JP": "Japan",
	"KE": "Kenya",
	"KR": "Korea",
	"MA": "Morocco",
	"MX": "Mexico",
	"NG": "Nigeria",
	"NL": "Netherlands",
	"NO": "Norway",
	"NZ": "New Zealand",
	"PE": "Peru",
	"PK": "Pakistan",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"RS": "Serbia",
	"RU": "Russia",
	"SA": "Saudi Arabia",
	"SE": "Sweden",
	"SI": "Slovenia",
	"SK": "Slovakia",
	"SN": "Senegal",
	"TR": "Turkey",
	"UA": "Ukraine",
	"US": "USA",
	"UY": "Uruguay",
	"VE": "Venezuela",
	"ZA": "South Africa",
}

// wikiCountryAliases are country spellings seen in info cards that differ
// from the display names above.
var wikiCountryAliases = map[string]string{
	"United States":            "US",
	"United States of America": "US",
	"U.S.":                     "US",
	"England":                  "GB",
	"Scotland":                 "GB",
	"Wales":                    "GB",
	"Northern Ireland":         "GB",
	"Great Britain":            "GB",
	"UK":                       "GB",
	"Czech Republic":           "CZ",
	"South Korea":              "KR",
	"Republic of Ireland":      "IE",
	"Russian Federation":       "RU",
	"Holland":                  "NL",
	"Türkiye":                  "TR",
}

// wikiNationalities maps demonyms to market codes.
var wikiNationalities = map[string]string{
	"Algerian":      "DZ",
	"American":      "US",
	"Argentine":     "AR",
	"Argentinian":   "AR",
	"Australian":    "AU",
	"Austrian":      "AT",
	"Belgian":       "BE",
	"Brazilian":     "BR",
	"British":       "GB",
	"Bulgarian":     "BG",
	"Cameroonian":   "CM",
	"Canadian":      "CA",
	"Chilean":       "CL",
	"Chinese":       "CN",
	"Colombian":     "CO",
	"Croatian":      "HR",
	"Czech":         "CZ",
	"Danish":        "DK",
	"Dominican":     "DO",
	"Dutch":         "NL",
	"Ecuadorian":    "EC",
	"Egyptian":      "EG",
	"English":       "GB",
	"Finnish":       "FI",
	"French":        "FR",
	"German":        "DE",
	"Ghanaian":      "GH",
	"Greek":         "GR",
	"Hungarian":     "HU",
	"Icelandic":     "IS",
	"Indian":        "IN",
	"Iranian":       "IR",
	"Irish":         "IE",
	"Italian":       "IT",
	"Jamaican":      "JM",
	"Japanese":      "JP",
	"Kenyan":        "KE",
	"Korean":        "KR",
	"Mexican":       "MX",
	"Moroccan":      "MA",
	"New Zealand":   "NZ",
	"Nigerian":      "NG",
	"Norwegian":     "NO",
	"Pakistani":     "PK",
	"Peruvian":      "PE",
	"Polish":        "PL",
	"Portuguese":    "PT",
	"Romanian":      "RO",
	"Russian":       "RU",
	"Saudi":         "SA",
	"Scottish":      "GB",
	"Senegalese":    "SN",
	"Serbian":       "RS",
	"Slovak":        "SK",
	"Slovenian":     "SI",
	"South African": "ZA",
	"South Korean":  "KR",
	"Spanish":       "ES",
	"Swedish":       "SE",
	"Swiss":         "CH",
	"Turkish":       "TR",
	"Ukrainian":     "UA",
	"Uruguayan":     "UY",
	"Venezuelan":    "VE",
	"Welsh":         "GB",
}

var wikiCountries = func() map[string]string {
	out := make(map[string]string, len(countries)+len(wikiCountryAliases))
	for code, name := range countries {
		out[name] = code
	}
	for name, code := range wikiCountryAliases {
		out[name] = code
	}
	return out
}()

// rosterCountryNames are link texts that flag a nationality column rather
// than a player in generic roster tables.
var rosterCountryNames = func() map[string]struct{} {
	out := map[string]struct{}{
		"United States": {},
		"South Korea":   {},
		"North Korea":   {},
		"Ivory Coast":   {},
	}
	for _, name := range countries {
		out[name] = struct{}{}
	}
	return out
}()

// IsMarket reports whether code is a supported two-letter market code.
func IsMarket(code string) bool {
	_, ok := countries[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func CountryName(code string) string {
	return countries[strings.ToUpper(strings.TrimSpace(code))]
}

// MarketFromCountry maps a country display name to its market code.
func MarketFromCountry(name string) (string, bool) {
	code, ok := wikiCountries[strings.TrimSpace(name)]
	return code, ok
}

// MarketFromNationality maps a demonym to its market code.
func MarketFromNationality(demonym string) (string, bool) {
	code, ok := wikiNationalities[strings.TrimSpace(demonym)]
	return code, ok
}

// IsRosterCountryName reports link texts the generic roster rule must skip.
func IsRosterCountryName(text string) bool {
	_, ok := rosterCountryNames[strings.TrimSpace(text)]
	return ok
}
