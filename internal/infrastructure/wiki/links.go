package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	crerr "github.com/cockroachdb/errors"

	"github.com/mikekeda/athletes/internal/domain/entity"
)

const DefaultTeamLinkSelector = "table tr > td:nth-of-type(1) > a"

// ErrInvalidSelector wraps selectors cascadia cannot compile.
var ErrInvalidSelector = crerr.New("invalid css selector")

// SelectLinks returns the absolute, de-duplicated hrefs matched by selector
// in document order.
func SelectLinks(doc *Document, selector string) ([]string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = DefaultTeamLinkSelector
	}
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, crerr.WithSecondaryError(crerr.Wrapf(ErrInvalidSelector, "compile selector %q", selector), err)
	}

	seen := make(map[string]struct{})
	var out []string
	doc.Selection().FindMatcher(matcher).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		abs, err := entity.CanonicalURL(doc.URL, href)
		if err != nil {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	})
	return out, nil
}
