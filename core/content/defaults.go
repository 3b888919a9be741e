package content

import (
	"newsdesk-api/core/domain"
	timeutil "newsdesk-api/pkg/utils/time"
)

// Default article shown when neither the origin nor the cache can answer a
// single-item request
const (
	DefaultArticleID      = "default-article"
	DefaultArticleTitle   = "Loading latest news..."
	DefaultArticleExcerpt = "Stay tuned for the latest updates."
)

// DefaultArticle manufactures the safe stand-in article. It is never
// navigable and its image is the placeholder for its title.
func (s *Service) DefaultArticle() domain.Article {
	a := domain.Article{
		ID:           DefaultArticleID,
		Category:     domain.CategoryNational,
		Language:     s.cfg.SourceLanguage,
		Title:        DefaultArticleTitle,
		Excerpt:      DefaultArticleExcerpt,
		Image:        s.gate.Placeholder(DefaultArticleTitle),
		ImagePending: false,
		PublishedAt: domain.PublishedAt{
			Date: timeutil.FormatDisplayDate(s.now()),
		},
	}
	a.SetOriginals()
	return a
}
