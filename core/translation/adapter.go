// ABOUTME: Translation adapter rewrites article display text into the active language
// ABOUTME: Original-language fields are never touched and failures keep the old text

package translation

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
)

// DefaultSourceLanguage is assumed for articles that carry no language
const DefaultSourceLanguage = "en"

// Adapter wraps a translation capability
type Adapter struct {
	translator  interfaces.Translator
	logger      interfaces.Logger
	source      string
	concurrency int
}

// NewAdapter creates an adapter. A nil translator makes every call a copy.
func NewAdapter(translator interfaces.Translator, logger interfaces.Logger, sourceLang string) *Adapter {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if sourceLang == "" {
		sourceLang = DefaultSourceLanguage
	}
	return &Adapter{
		translator:  translator,
		logger:      logger,
		source:      sourceLang,
		concurrency: 4,
	}
}

// SameLanguage compares two language tags by their base language, so
// "en" and "en-GB" match. Unparseable tags fall back to a plain comparison.
func SameLanguage(a, b string) bool {
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}

// MaybeTranslate returns a translated copy of articles. The input slice is
// never modified. Articles already stored in targetLang are copied as-is.
func (a *Adapter) MaybeTranslate(ctx context.Context, articles []domain.Article, targetLang string) []domain.Article {
	out := domain.CloneArticles(articles)
	if a.translator == nil || targetLang == "" || len(out) == 0 {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range out {
		stored := out[i].Language
		if stored == "" {
			stored = a.source
		}
		if SameLanguage(stored, targetLang) {
			continue
		}

		g.Go(func() error {
			a.translateArticle(gctx, &out[i], stored, targetLang)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (a *Adapter) translateArticle(ctx context.Context, art *domain.Article, source, target string) {
	art.SetOriginals()

	art.Title = a.translateField(ctx, art.ID, "title", art.TitleOriginalLanguage, art.Title, source, target)
	art.Excerpt = a.translateField(ctx, art.ID, "excerpt", art.ExcerptOriginalLanguage, art.Excerpt, source, target)
	if art.ContentOriginalLanguage != "" {
		art.Content = a.translateField(ctx, art.ID, "content", art.ContentOriginalLanguage, art.Content, source, target)
	}
	if art.IsTrending && art.TrendingTitleOriginalLanguage != "" {
		art.TrendingTitle = a.translateField(ctx, art.ID, "trendingTitle", art.TrendingTitleOriginalLanguage, art.TrendingTitle, source, target)
	}
}

// translateField returns the display text for one field. current is kept
// on any failure.
func (a *Adapter) translateField(ctx context.Context, id, field, original, current, source, target string) string {
	if strings.TrimSpace(original) == "" {
		return current
	}

	already, err := a.translator.DetectIsTargetLanguage(ctx, original, target)
	if err != nil {
		a.logger.Debug("Language detection failed, translating anyway", map[string]interface{}{
			"id":    id,
			"field": field,
			"error": err.Error(),
		})
	} else if already {
		return original
	}

	translated, err := a.translator.Translate(ctx, original, source, target)
	if err != nil || strings.TrimSpace(translated) == "" {
		fields := map[string]interface{}{
			"id":     id,
			"field":  field,
			"target": target,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		a.logger.Warn("Translation failed, keeping text", fields)
		return current
	}
	return translated
}
