// ABOUTME: Content service fetches article collections with an origin, cache, default cascade
// ABOUTME: Provides business logic for content delivery independent of the HTTP layer

package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newsdesk-api/core/domain"
	coreerrors "newsdesk-api/core/errors"
	"newsdesk-api/core/identity"
	"newsdesk-api/core/imagegate"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/translation"
	"newsdesk-api/pkg/featureflags"
	timeutil "newsdesk-api/pkg/utils/time"
)

// DefaultExcerptLength is the rune limit for excerpts derived from content
const DefaultExcerptLength = 160

// Config tunes the content service
type Config struct {
	// BaseURL is the origin API root, e.g. https://api.example.com/api
	BaseURL string

	// Origin request ceilings; zero keeps the selector policy's value
	OrdinaryTimeout time.Duration
	BreakingTimeout time.Duration

	// Image gate settings
	GateTimeout         time.Duration
	ProbeConcurrency    int
	PlaceholderTemplate string

	// SourceLanguage is assumed for articles that carry no language
	SourceLanguage string

	ExcerptLength int

	// Flags switches pipeline stages; nil enables everything
	Flags featureflags.Manager

	// Now is the clock used for fetch timestamps
	Now func() time.Time
}

// Service is the fetch/fallback orchestrator
type Service struct {
	deps       interfaces.Dependencies
	cfg        Config
	origin     *origin
	originErr  error
	gate       *imagegate.Gate
	trustGate  *imagegate.Gate
	translator *translation.Adapter
	flags      featureflags.Manager
	logger     interfaces.Logger
	now        func() time.Time
}

// NewService creates a new content service instance
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = translation.DefaultSourceLanguage
	}
	if cfg.ExcerptLength <= 0 {
		cfg.ExcerptLength = DefaultExcerptLength
	}
	if cfg.Flags == nil {
		cfg.Flags = featureflags.NewStaticManager(nil)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	placeholder := imagegate.NewPlaceholder(cfg.PlaceholderTemplate)
	o, err := newOrigin(deps.HTTPClient, cfg.BaseURL)

	return &Service{
		deps:      deps,
		cfg:       cfg,
		origin:    o,
		originErr: err,
		gate: imagegate.New(deps.ImageProber,
			imagegate.WithTimeout(cfg.GateTimeout),
			imagegate.WithConcurrency(cfg.ProbeConcurrency),
			imagegate.WithPlaceholder(placeholder),
			imagegate.WithLogger(deps.Logger),
		),
		trustGate:  imagegate.New(nil, imagegate.WithPlaceholder(placeholder)),
		translator: translation.NewAdapter(deps.Translator, deps.Logger, cfg.SourceLanguage),
		flags:      cfg.Flags,
		logger:     deps.Logger,
		now:        cfg.Now,
	}
}

// Fetch returns up to count articles for sel in language lang. It never
// fails: origin problems fall back to the cached collection, then to a
// default article for single-item requests or an empty list otherwise.
func (s *Service) Fetch(ctx context.Context, sel domain.Selector, count int, lang string) []domain.Article {
	count = normalizeCount(sel, count)

	articles, err := s.Refresh(ctx, sel, count)
	if err == nil {
		return s.translate(ctx, articles, lang)
	}

	key := domain.CacheKey(sel, count)
	s.logger.Warn("Origin fetch failed, falling back to cache", map[string]interface{}{
		"selector": sel.String(),
		"count":    count,
		"reason":   coreerrors.Classify(err),
		"error":    err.Error(),
	})

	if entry, ok := s.readEntry(ctx, key); ok {
		return s.translate(ctx, entry.Articles, lang)
	}

	if count == 1 {
		s.logger.Info("No cached content, serving default article", map[string]interface{}{
			"selector": sel.String(),
			"key":      key,
		})
		return s.translate(ctx, []domain.Article{s.DefaultArticle()}, lang)
	}

	return []domain.Article{}
}

// Refresh runs the origin path only: fetch, normalize, gate images and write
// the cache entry. The returned articles are untranslated.
func (s *Service) Refresh(ctx context.Context, sel domain.Selector, count int) ([]domain.Article, error) {
	count = normalizeCount(sel, count)
	if err := sel.Validate(); err != nil {
		return nil, &coreerrors.ValidationError{Field: "selector", Message: err.Error()}
	}
	if s.originErr != nil {
		return nil, s.originErr
	}

	policy := domain.PolicyFor(sel.Kind)
	fetchedAt := s.now()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeoutFor(policy))
	defer cancel()

	var (
		articles []domain.Article
		err      error
	)
	if policy.FanOut {
		articles, err = s.fetchFanOut(reqCtx, sel, policy, count)
	} else {
		articles, err = s.fetchOne(reqCtx, sel, policy, count)
	}
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].PublishedAt.TimeAgo = timeutil.TimeAgo(fetchedAt, i)
	}

	report := s.gateFor(ctx).Resolve(ctx, articles)
	s.logger.Debug("Images resolved", map[string]interface{}{
		"selector":     sel.String(),
		"resolved":     report.Resolved,
		"placeholders": report.Placeholders,
		"pending":      report.Pending,
	})

	s.writeEntry(ctx, domain.CacheKey(sel, count), domain.CacheEntry{
		Articles:  articles,
		FetchedAt: fetchedAt,
	})

	return articles, nil
}

// Detail fetches one article by id. Only detail-fetchable ids are accepted.
// Origin failures fall back to the cached copy of the article.
func (s *Service) Detail(ctx context.Context, id, lang string) (domain.Article, error) {
	if !identity.IsDetailFetchable(id) {
		return domain.Article{}, &coreerrors.ValidationError{
			Field:   "id",
			Message: "id cannot be used for detail lookups",
		}
	}
	id, _ = identity.Normalize(identity.Candidates{DatabaseID: id})
	key := domain.DetailCacheKey(id)

	articles, err := s.fetchDetail(ctx, id)
	if err == nil {
		s.gateFor(ctx).Resolve(ctx, articles)
		s.writeEntry(ctx, key, domain.CacheEntry{Articles: articles, FetchedAt: s.now()})
		return s.translate(ctx, articles, lang)[0], nil
	}

	s.logger.Warn("Detail fetch failed, falling back to cache", map[string]interface{}{
		"id":     id,
		"reason": coreerrors.Classify(err),
		"error":  err.Error(),
	})

	if entry, ok := s.readEntry(ctx, key); ok {
		return s.translate(ctx, entry.Articles[:1], lang)[0], nil
	}

	return domain.Article{}, &coreerrors.NotFoundError{Resource: "article", ID: id}
}

// Invalidate removes the cache entry for (sel, count)
func (s *Service) Invalidate(ctx context.Context, sel domain.Selector, count int) error {
	if s.deps.Cache == nil {
		return nil
	}
	count = normalizeCount(sel, count)
	key := domain.CacheKey(sel, count)
	if err := s.deps.Cache.Delete(ctx, key); err != nil {
		return coreerrors.WrapError(err, "failed to invalidate "+key)
	}
	s.logger.Info("Cache entry invalidated", map[string]interface{}{"key": key})
	return nil
}

func (s *Service) fetchOne(ctx context.Context, sel domain.Selector, policy domain.Policy, count int) ([]domain.Article, error) {
	records, err := s.origin.list(ctx, s.origin.listURL(sel, policy.Breaking, policy.Limit(count)))
	if err != nil {
		return nil, err
	}

	scope := sel.String()
	articles := make([]domain.Article, 0, len(records))
	for i, rec := range records {
		articles = append(articles, s.origin.hydrate(rec, scope, i, s.cfg.ExcerptLength))
	}

	if policy.Ranked && s.flags.IsEnabled(ctx, featureflags.TrendingRanking) {
		articles = RankTrending(articles)
	}
	return truncate(articles, count), nil
}

// fetchFanOut requests every selector category concurrently and interleaves
// whatever came back. It only fails when no category produced anything.
func (s *Service) fetchFanOut(ctx context.Context, sel domain.Selector, policy domain.Policy, count int) ([]domain.Article, error) {
	groups := make([][]domain.Article, len(sel.Categories))

	var (
		mu       sync.Mutex
		firstErr error
		g        errgroup.Group
	)
	for i, c := range sel.Categories {
		g.Go(func() error {
			catSel := domain.CategorySelector(c)
			records, err := s.origin.list(ctx, s.origin.listURL(catSel, policy.Breaking, count))
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				s.logger.Debug("Side category fetch failed", map[string]interface{}{
					"category": string(c),
					"error":    err.Error(),
				})
				return nil
			}

			scope := string(c)
			group := make([]domain.Article, 0, len(records))
			for j, rec := range records {
				group = append(group, s.origin.hydrate(rec, scope, j, s.cfg.ExcerptLength))
			}
			groups[i] = group
			return nil
		})
	}
	_ = g.Wait()

	articles := Interleave(groups, count)
	if len(articles) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, coreerrors.ErrEmptyResult
	}
	return articles, nil
}

func (s *Service) fetchDetail(ctx context.Context, id string) ([]domain.Article, error) {
	if s.originErr != nil {
		return nil, s.originErr
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeoutFor(domain.PolicyFor(domain.KindCategory)))
	defer cancel()

	rec, err := s.origin.detail(reqCtx, id)
	if err != nil {
		return nil, err
	}

	a := s.origin.hydrate(rec, "detail", 0, s.cfg.ExcerptLength)
	if a.ID != id {
		// the detail endpoint may omit ids; the requested one is authoritative
		a.ID = id
		a.DetailAvailable = true
	}
	a.PublishedAt.TimeAgo = timeutil.TimeAgo(s.now(), 0)
	return []domain.Article{a}, nil
}

func (s *Service) timeoutFor(policy domain.Policy) time.Duration {
	if policy.Timeout == domain.BreakingTimeout {
		if s.cfg.BreakingTimeout > 0 {
			return s.cfg.BreakingTimeout
		}
		return policy.Timeout
	}
	if s.cfg.OrdinaryTimeout > 0 {
		return s.cfg.OrdinaryTimeout
	}
	return policy.Timeout
}

func (s *Service) gateFor(ctx context.Context) *imagegate.Gate {
	if s.flags.IsEnabled(ctx, featureflags.ImageGate) {
		return s.gate
	}
	return s.trustGate
}

func (s *Service) translate(ctx context.Context, articles []domain.Article, lang string) []domain.Article {
	if !s.flags.IsEnabled(ctx, featureflags.Translation) {
		return domain.CloneArticles(articles)
	}
	return s.translator.MaybeTranslate(ctx, articles, lang)
}

// readEntry loads a cache entry. Misses, decode failures and empty entries
// all count as absent.
func (s *Service) readEntry(ctx context.Context, key string) (domain.CacheEntry, bool) {
	if s.deps.Cache == nil {
		return domain.CacheEntry{}, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return domain.CacheEntry{}, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Cache entry is corrupt", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return domain.CacheEntry{}, false
	}
	if len(entry.Articles) == 0 {
		return domain.CacheEntry{}, false
	}
	return entry, true
}

func (s *Service) writeEntry(ctx context.Context, key string, entry domain.CacheEntry) {
	if s.deps.Cache == nil || !s.flags.IsEnabled(ctx, featureflags.CacheWrite) {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("Failed to encode cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	// Content entries never expire on their own
	if err := s.deps.Cache.Set(ctx, key, data, 0); err != nil {
		s.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func normalizeCount(sel domain.Selector, count int) int {
	if count < 1 {
		return domain.PolicyFor(sel.Kind).DefaultCount
	}
	return count
}
