// ABOUTME: Deterministic placeholder images derived from an article title
// ABOUTME: The same title always maps to the same placeholder seed

package imagegate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// DefaultPlaceholderTemplate is the placeholder URL; %d receives the seed
const DefaultPlaceholderTemplate = "https://picsum.photos/seed/%d/800/450"

// SeedRange bounds placeholder seeds to [0, SeedRange)
const SeedRange = 1000

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "over": {},
	"that": {}, "the": {}, "their": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {},
}

// TitleKey reduces a title to the form that gets hashed: lowercased,
// punctuation removed, stop-words dropped and whitespace collapsed.
func TitleKey(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, title)

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Seed maps a title into [0, SeedRange)
func Seed(title string) int {
	return int(xxhash.Sum64String(TitleKey(title)) % SeedRange)
}

// Placeholder builds placeholder URLs from a template
type Placeholder struct {
	template string
}

// NewPlaceholder creates a placeholder builder. An empty template, or one
// without a %d verb, falls back to DefaultPlaceholderTemplate.
func NewPlaceholder(template string) *Placeholder {
	if !strings.Contains(template, "%d") {
		template = DefaultPlaceholderTemplate
	}
	return &Placeholder{template: template}
}

// URL returns the placeholder image for a title
func (p *Placeholder) URL(title string) string {
	return fmt.Sprintf(p.template, Seed(title))
}
