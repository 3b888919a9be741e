// ABOUTME: HTML utilities for turning article bodies into plain text
// ABOUTME: Used to derive excerpts when the origin sends none

package html

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style content is dropped.
func StripHTML(fragment string) string {
	if !strings.Contains(fragment, "<") && !strings.Contains(fragment, "&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	// Block elements would otherwise glue neighbouring words together
	doc.Find("p, br, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})

	return collapse(doc.Text())
}

// Truncate shortens text to at most max runes, cutting at a word boundary
// when one is available and appending "...".
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

// Excerpt derives a plain-text summary from an HTML body
func Excerpt(body string, max int) string {
	return Truncate(StripHTML(body), max)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
