// ABOUTME: HTML utilities for turning rendered WordPress fields into plain text
// ABOUTME: Parses fragments with goquery so entities and nesting are handled properly

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StripHTML returns the visible text of an HTML fragment with entities
// decoded and runs of whitespace collapsed to single spaces.
func StripHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// collectText appends every text node below n in document order
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Truncate shortens text to at most limit runes, cutting on a word boundary
// and appending an ellipsis when anything was removed.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
