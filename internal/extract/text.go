package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Clean normalizes s to NFC, collapses whitespace runs and trims the ends
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// FirstLine keeps the text before the first line break
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// TrimEllipsis drops a trailing "…" or "..." left by truncated snippets
func TrimEllipsis(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "…")
	s = strings.TrimSuffix(s, "...")
	return strings.TrimSpace(s)
}

// RawText returns the uncleaned text of the first node matching selector.
// Use it with Map when line structure matters before cleaning.
func RawText(selector string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		node := root.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		return node.Text(), true
	}
}

// OwnText joins the direct text children of the first node in sel, ignoring
// text inside nested elements.
func OwnText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	for c := sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
		}
	}
	return Clean(strings.Join(parts, " "))
}

// Snippets collects one string per node matched by the first selector that
// matches anything. Empty strings are dropped.
func Snippets(root *goquery.Selection, selectors []string, text func(*goquery.Selection) string) []string {
	if text == nil {
		text = func(s *goquery.Selection) string { return Clean(s.Text()) }
	}
	var out []string
	Cards(root, selectors).Each(func(_ int, s *goquery.Selection) {
		if v := text(s); v != "" {
			out = append(out, v)
		}
	})
	return out
}
