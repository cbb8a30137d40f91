package wiki

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

const titleSuffix = " - Wikipedia"

// Document is a parsed wiki page. It lives for one extraction pass.
type Document struct {
	URL string
	doc *goquery.Document
}

func ParseDocument(pageURL string, body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse html %s", pageURL)
	}
	return &Document{URL: pageURL, doc: doc}, nil
}

// Title is the page title without the " - Wikipedia" suffix.
func (d *Document) Title() string {
	title := d.doc.Find("title").First().Text()
	if idx := strings.Index(title, titleSuffix); idx >= 0 {
		title = title[:idx]
	}
	return cleanText(title)
}

// Site is scheme://host of the page, the base for relative roster links.
func (d *Document) Site() string {
	parsed, err := url.Parse(d.URL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

var textCleaner = strings.NewReplacer("\u00a0", " ")

func cleanText(s string) string {
	return strings.TrimSpace(textCleaner.Replace(s))
}
