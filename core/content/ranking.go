// ABOUTME: Client-side ordering rules for selectors the origin cannot order itself
// ABOUTME: Trending ranking and round-robin interleaving of side fan-out results

package content

import (
	"sort"

	"newsdesk-api/core/domain"
)

// RankTrending orders articles trending first, then featured, then breaking,
// then newest first. Ties keep the origin order.
func RankTrending(articles []domain.Article) []domain.Article {
	ranked := domain.CloneArticles(articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsTrending != b.IsTrending {
			return a.IsTrending
		}
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if a.IsBreaking != b.IsBreaking {
			return a.IsBreaking
		}
		return a.PublishedAt.Unix > b.PublishedAt.Unix
	})
	return ranked
}

// Interleave merges per-category groups round-robin, skipping duplicate ids,
// until limit articles are collected or every group is exhausted.
func Interleave(groups [][]domain.Article, limit int) []domain.Article {
	out := make([]domain.Article, 0, limit)
	seen := make(map[string]struct{})

	for round := 0; len(out) < limit; round++ {
		progressed := false
		for _, g := range groups {
			if round >= len(g) {
				continue
			}
			progressed = true
			a := g[round]
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
		if !progressed {
			break
		}
	}
	return out
}

func truncate(articles []domain.Article, count int) []domain.Article {
	if count > 0 && len(articles) > count {
		return articles[:count]
	}
	return articles
}
