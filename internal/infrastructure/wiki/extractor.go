package wiki

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/domain/vocabulary"
)

const DefaultMaxAge = 45

type ExtractionReason string

const (
	ReasonNoInfoCard ExtractionReason = "NO_INFO_CARD"
	ReasonNoBirthday ExtractionReason = "NO_BIRTHDAY"
	ReasonTooOld     ExtractionReason = "TOO_OLD"
)

// ExtractionError is a page the extractor refused. Match with errors.Is
// against ErrNoInfoCard, ErrNoBirthday or ErrTooOld.
type ExtractionError struct {
	Reason ExtractionReason
	URL    string
	Age    int
}

var (
	ErrNoInfoCard = &ExtractionError{Reason: ReasonNoInfoCard}
	ErrNoBirthday = &ExtractionError{Reason: ReasonNoBirthday}
	ErrTooOld     = &ExtractionError{Reason: ReasonTooOld}
)

func (e *ExtractionError) Error() string {
	switch {
	case e.URL != "" && e.Reason == ReasonTooOld:
		return fmt.Sprintf("extract %s: %s (age %d)", e.URL, e.Reason, e.Age)
	case e.URL != "":
		return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
	default:
		return string(e.Reason)
	}
}

func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	return ok && t.Reason == e.Reason
}

// Extractor turns info cards into entity.Facts.
type Extractor struct {
	now    func() time.Time
	maxAge int
}

type ExtractorOption func(*Extractor)

func WithClock(now func() time.Time) ExtractorOption {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

func WithMaxAge(years int) ExtractorOption {
	return func(e *Extractor) {
		if years > 0 {
			e.maxAge = years
		}
	}
}

func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{now: time.Now, maxAge: DefaultMaxAge}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Athlete extracts a person card. A card without a birthday, or one whose
// owner is older than the age cutoff, is refused.
func (e *Extractor) Athlete(doc *Document) (entity.Facts, error) {
	card, ok := infoCard(doc)
	if !ok {
		return entity.Facts{}, &ExtractionError{Reason: ReasonNoInfoCard, URL: doc.URL}
	}

	facts := entity.Facts{Name: cardName(doc, card)}

	bday := cleanText(card.Find("span.bday").First().Text())
	if bday == "" {
		return facts, &ExtractionError{Reason: ReasonNoBirthday, URL: doc.URL}
	}
	birthday, err := time.Parse("2006-01-02", bday)
	if err != nil {
		return facts, &ExtractionError{Reason: ReasonNoBirthday, URL: doc.URL}
	}
	if age := athlete.AgeAt(birthday, e.now()); age > e.maxAge {
		return facts, &ExtractionError{Reason: ReasonTooOld, URL: doc.URL, Age: age}
	}
	facts.Birthday = birthday
	facts.PhotoURL = cardPhoto(card)

	sheet := entity.NewFactSheet()
	walkRows(card, func(key string, value *goquery.Selection, hasValue bool) {
		text := ""
		if hasValue {
			text = cellValue(key, value)
		}
		sheet.Set(key, text)
		if strings.Contains(strings.ToLower(key), "national team") {
			facts.International = true
		}
		if hasValue {
			applyRule(&facts, key, text, value)
		}
	})
	facts.AdditionalInfo = sheet
	return facts, nil
}

// Card extracts a team or league card: display name, photo and the fact
// sheet. The page title still names the record when the card is missing,
// in which case ErrNoInfoCard is returned next to the partial facts.
func (e *Extractor) Card(doc *Document) (entity.Facts, error) {
	facts := entity.Facts{Name: doc.Title()}
	card, ok := infoCard(doc)
	if !ok {
		return facts, &ExtractionError{Reason: ReasonNoInfoCard, URL: doc.URL}
	}
	facts.PhotoURL = cardPhoto(card)

	sheet := entity.NewFactSheet()
	walkRows(card, func(key string, value *goquery.Selection, hasValue bool) {
		text := ""
		if hasValue {
			text = cellValue(key, value)
		}
		sheet.Set(key, text)
	})
	facts.AdditionalInfo = sheet
	return facts, nil
}

// CardLink returns the href of the first anchor in the card row keyed key.
func CardLink(doc *Document, key string) (string, bool) {
	card, ok := infoCard(doc)
	if !ok {
		return "", false
	}
	var href string
	walkRows(card, func(k string, value *goquery.Selection, hasValue bool) {
		if href != "" || !hasValue || k != key {
			return
		}
		href, _ = value.Find("a[href]").First().Attr("href")
	})
	return href, href != ""
}

func infoCard(doc *Document) (*goquery.Selection, bool) {
	for _, selector := range []string{"table.vcard", "table.infobox"} {
		card := doc.Selection().Find(selector).First()
		if card.Length() == 0 {
			continue
		}
		if role, _ := card.Parent().Attr("role"); role == "navigation" {
			return nil, false
		}
		return card, true
	}
	return nil, false
}

func cardName(doc *Document, card *goquery.Selection) string {
	if fn := card.Find(".fn").First(); fn.Length() > 0 {
		if name := cleanText(fn.Text()); name != "" {
			return name
		}
	}
	if caption := doc.Selection().Find("caption").First(); caption.Length() > 0 {
		if name := cleanText(caption.Text()); name != "" {
			return name
		}
	}
	return doc.Title()
}

func cardPhoto(card *goquery.Selection) string {
	src, ok := card.Find("img[src]").First().Attr("src")
	src = strings.Trim(strings.TrimSpace(src), "/")
	if !ok || src == "" {
		return ""
	}
	return "https://" + src
}

// walkRows visits every row with at least one direct cell. The key is the
// first cell's text; value is the second cell when there is one.
func walkRows(card *goquery.Selection, visit func(key string, value *goquery.Selection, hasValue bool)) {
	card.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			return
		}
		first := cells.First()
		if first.Find("table").Length() > 0 {
			return
		}
		key := cleanText(first.Text())
		if cells.Length() > 1 {
			visit(key, cells.Eq(1), true)
			return
		}
		visit(key, nil, false)
	})
}

func cellValue(key string, cell *goquery.Selection) string {
	if key == "Website" {
		if href, ok := cell.Find("a[href]").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return cleanText(cell.Text())
}

// applyRule runs the semantic field rules. Every rule only fills an empty
// field, so an earlier row always wins over a later one.
func applyRule(facts *entity.Facts, key, value string, cell *goquery.Selection) {
	switch key {
	case "Current team", "Club":
		if facts.TeamName == "" {
			facts.TeamName = value
		}
	case "Sport", "Discipline", "League":
		if facts.Category != "" {
			return
		}
		if category, ok := vocabulary.CategoryFromWiki(value); ok {
			facts.Category = category
			if vocabulary.IsNBA(value) && facts.DomesticMarket == "" {
				facts.DomesticMarket = "US"
			}
		}
	case "Country":
		if facts.LocationMarket != "" {
			return
		}
		name := cleanText(cell.Find("a").First().Text())
		if name == "" {
			name = value
		}
		if code, ok := vocabulary.MarketFromCountry(name); ok {
			facts.LocationMarket = code
		}
	case "Nationality":
		if facts.DomesticMarket != "" {
			return
		}
		if code, ok := vocabulary.MarketFromNationality(value); ok {
			facts.DomesticMarket = code
		}
	case "Place of birth":
		if facts.DomesticMarket != "" {
			return
		}
		country := value
		if idx := strings.LastIndex(value, ","); idx >= 0 {
			country = value[idx+1:]
		}
		if code, ok := vocabulary.MarketFromCountry(strings.TrimSpace(country)); ok {
			facts.DomesticMarket = code
		}
	}
}
