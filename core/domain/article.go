// ABOUTME: Article domain model represents a single unit of news content
// ABOUTME: Carries display text alongside its original-language source of truth

package domain

import "strings"

// Category is one of the fixed content categories served by the origin
type Category string

// Known categories
const (
	CategoryNational      Category = "National"
	CategoryInternational Category = "International"
	CategorySports        Category = "Sports"
	CategoryBusiness      Category = "Business"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryPolitics      Category = "Politics"
	CategoryReligious     Category = "Religious"
	CategoryTechnology    Category = "Technology"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryNational,
	CategoryInternational,
	CategorySports,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryPolitics,
	CategoryReligious,
	CategoryTechnology,
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Article represents a news article ready for presentation
type Article struct {
	// ID is the normalized, non-empty identifier
	ID string `json:"id"`

	// DetailAvailable reports whether ID can be used for detail lookups
	DetailAvailable bool `json:"detailAvailable"`

	Category Category `json:"category"`

	// Language is the language the original fields are stored in
	Language string `json:"language,omitempty"`

	// Display text and its untranslated counterpart
	Title                   string `json:"title"`
	TitleOriginalLanguage   string `json:"titleOriginalLanguage"`
	Excerpt                 string `json:"excerpt"`
	ExcerptOriginalLanguage string `json:"excerptOriginalLanguage"`
	Content                 string `json:"content,omitempty"`
	ContentOriginalLanguage string `json:"contentOriginalLanguage,omitempty"`

	// Image is an absolute URL, or empty while unresolved
	Image        string `json:"image"`
	ImagePending bool   `json:"imagePending"`

	IsBreaking bool `json:"isBreaking"`
	IsFeatured bool `json:"isFeatured"`
	IsTrending bool `json:"isTrending"`

	TrendingTitle                 string `json:"trendingTitle,omitempty"`
	TrendingTitleOriginalLanguage string `json:"trendingTitleOriginalLanguage,omitempty"`

	PublishedAt PublishedAt `json:"publishedAt"`
}

// PublishedAt holds the display date and the relative label assigned at fetch time
type PublishedAt struct {
	// Date is the display-formatted publication date
	Date string `json:"date"`

	// TimeAgo is derived from result ordering, not from a clock delta
	TimeAgo string `json:"timeAgo"`

	// Unix is the parsed publication time in seconds, zero when unknown
	Unix int64 `json:"unix,omitempty"`
}

// SetOriginals records the original-language fields from the current
// display text. Fields that already hold a value are left untouched.
func (a *Article) SetOriginals() {
	if a.TitleOriginalLanguage == "" {
		a.TitleOriginalLanguage = a.Title
	}
	if a.ExcerptOriginalLanguage == "" {
		a.ExcerptOriginalLanguage = a.Excerpt
	}
	if a.ContentOriginalLanguage == "" {
		a.ContentOriginalLanguage = a.Content
	}
	if a.IsTrending && a.TrendingTitleOriginalLanguage == "" {
		a.TrendingTitleOriginalLanguage = a.TrendingTitle
	}
}

// IsValid checks the invariants every article handed to callers must hold
func (a *Article) IsValid() bool {
	if a.ID == "" {
		return false
	}

	// An empty image is only acceptable while still pending
	if a.Image == "" && !a.ImagePending {
		return false
	}

	return true
}

// CloneArticles returns a copy of the slice so callers can mutate freely
func CloneArticles(articles []Article) []Article {
	if articles == nil {
		return nil
	}
	out := make([]Article, len(articles))
	copy(out, articles)
	return out
}
