// Package dom holds a parsed snapshot of a browser tab's document.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a read-only view of one loaded document and the URL it was loaded from
type Page struct {
	URL string
	Doc *goquery.Document
}

// Parse builds a Page from serialized HTML
func Parse(pageURL, html string) (*Page, error) {
	return FromReader(pageURL, strings.NewReader(html))
}

// FromReader builds a Page from an HTML stream
func FromReader(pageURL string, r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: pageURL, Doc: doc}, nil
}

// Root returns the document-level selection
func (p *Page) Root() *goquery.Selection {
	if p == nil || p.Doc == nil {
		return &goquery.Selection{}
	}
	return p.Doc.Selection
}

// Find queries the whole document
func (p *Page) Find(selector string) *goquery.Selection {
	return p.Root().Find(selector)
}
