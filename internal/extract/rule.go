// Package extract evaluates ordered selector fallback chains against a DOM subtree.
package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Rule probes root for one value. ok is false when the rule found no node.
type Rule func(root *goquery.Selection) (value string, ok bool)

// Chain is an ordered list of rules. The first rule that finds a node wins,
// even if the node's text is empty.
type Chain []Rule

// Lookup evaluates the chain. A rule that panics counts as a miss.
func (c Chain) Lookup(root *goquery.Selection) (string, bool) {
	for i, rule := range c {
		if v, ok := safeEval(rule, root, i); ok {
			return v, true
		}
	}
	return "", false
}

// Value evaluates the chain and returns an empty string when nothing matched
func (c Chain) Value(root *goquery.Selection) string {
	v, _ := c.Lookup(root)
	return v
}

func safeEval(rule Rule, root *goquery.Selection, idx int) (v string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Int("rule", idx).Msg("Extraction rule failed, treating field as absent")
			v, ok = "", false
		}
	}()
	if rule == nil || root == nil {
		return "", false
	}
	return rule(root)
}

// Text returns the cleaned text content of the first node matching selector
func Text(selector string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		node := root.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		return Clean(node.Text()), true
	}
}

// Attr returns attribute name of the first node matching selector. A node
// without the attribute is a miss.
func Attr(selector, name string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		node := root.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		v, ok := node.Attr(name)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// ClosestAttr finds the first node matching selector, walks up to the nearest
// element matching closest (the node itself included) and reads attribute name.
func ClosestAttr(selector, closest, name string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		node := root.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		v, ok := node.Closest(closest).Attr(name)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// HTML returns the inner HTML of the first node matching selector
func HTML(selector string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		node := root.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		h, err := node.Html()
		if err != nil {
			return "", false
		}
		return h, true
	}
}

// Map post-processes the value produced by r
func Map(r Rule, fn func(string) string) Rule {
	return func(root *goquery.Selection) (string, bool) {
		v, ok := r(root)
		if !ok {
			return "", false
		}
		return fn(v), true
	}
}

// Texts is a chain of Text rules, one per selector
func Texts(selectors ...string) Chain {
	chain := make(Chain, 0, len(selectors))
	for _, s := range selectors {
		chain = append(chain, Text(s))
	}
	return chain
}

// Cards returns the nodes matched by the first selector that matches anything
func Cards(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if found := root.Find(s); found.Length() > 0 {
			return found
		}
	}
	return root.Slice(0, 0)
}
