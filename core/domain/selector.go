// ABOUTME: Selector domain model describes which article collection a caller wants
// ABOUTME: Per-kind fetch differences are expressed as data in the Policy table

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SelectorKind tags the variant held by a Selector
type SelectorKind string

// Selector kinds
const (
	KindCategory SelectorKind = "category"
	KindPage     SelectorKind = "page"
	KindBreaking SelectorKind = "breaking"
	KindTrending SelectorKind = "trending"
	KindSide     SelectorKind = "side"
)

// Selector identifies a logical request shape. It keys both the origin
// request and the cache entry.
type Selector struct {
	Kind SelectorKind

	// Value holds the category name or page slot
	Value string

	// Categories is only used by side selectors
	Categories []Category
}

// CategorySelector selects the newest articles of one category
func CategorySelector(c Category) Selector {
	return Selector{Kind: KindCategory, Value: string(c)}
}

// PageSelector selects the articles placed in a named page slot
func PageSelector(page string) Selector {
	return Selector{Kind: KindPage, Value: page}
}

// BreakingSelector selects breaking news
func BreakingSelector() Selector {
	return Selector{Kind: KindBreaking}
}

// TrendingSelector selects trending articles ranked client-side
func TrendingSelector() Selector {
	return Selector{Kind: KindTrending}
}

// SideSelector selects a sidebar mix drawn from several categories
func SideSelector(categories ...Category) Selector {
	cats := make([]Category, len(categories))
	copy(cats, categories)
	return Selector{Kind: KindSide, Categories: cats}
}

// String returns the canonical form used in cache keys
func (s Selector) String() string {
	switch s.Kind {
	case KindCategory:
		return s.Value
	case KindPage:
		return "page:" + s.Value
	case KindBreaking:
		return "breaking"
	case KindTrending:
		return "trending"
	case KindSide:
		names := make([]string, len(s.Categories))
		for i, c := range s.Categories {
			names[i] = string(c)
		}
		return "side:" + strings.Join(names, ",")
	}
	return string(s.Kind) + ":" + s.Value
}

// Validate checks the selector carries what its kind needs
func (s Selector) Validate() error {
	switch s.Kind {
	case KindCategory:
		if _, ok := ParseCategory(s.Value); !ok {
			return fmt.Errorf("unknown category %q", s.Value)
		}
	case KindPage:
		if strings.TrimSpace(s.Value) == "" {
			return errors.New("page selector requires a page name")
		}
	case KindBreaking, KindTrending:
	case KindSide:
		if len(s.Categories) == 0 {
			return errors.New("side selector requires at least one category")
		}
	default:
		return fmt.Errorf("unknown selector kind %q", s.Kind)
	}
	return nil
}

// ParseSelector parses the textual selector forms accepted by the API:
// "National", "category:National", "page:home", "breaking", "trending"
// and "side:Sports,Health".
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, errors.New("selector cannot be empty")
	}

	kind, value, hasValue := strings.Cut(raw, ":")
	var sel Selector

	switch strings.ToLower(kind) {
	case string(KindBreaking):
		sel = BreakingSelector()
	case string(KindTrending):
		sel = TrendingSelector()
	case string(KindPage):
		sel = PageSelector(strings.TrimSpace(value))
	case string(KindCategory):
		c, ok := ParseCategory(value)
		if !ok {
			return Selector{}, fmt.Errorf("unknown category %q", value)
		}
		sel = CategorySelector(c)
	case string(KindSide):
		var cats []Category
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, ok := ParseCategory(part)
			if !ok {
				return Selector{}, fmt.Errorf("unknown category %q", part)
			}
			cats = append(cats, c)
		}
		sel = SideSelector(cats...)
	default:
		if hasValue {
			return Selector{}, fmt.Errorf("unknown selector kind %q", kind)
		}
		c, ok := ParseCategory(raw)
		if !ok {
			return Selector{}, fmt.Errorf("unknown selector %q", raw)
		}
		sel = CategorySelector(c)
	}

	if err := sel.Validate(); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

// BreakingFilter controls the breaking query parameter sent to the origin
type BreakingFilter int

const (
	// BreakingAny sends no breaking filter
	BreakingAny BreakingFilter = iota
	// BreakingExclude asks for non-breaking articles only
	BreakingExclude
	// BreakingOnly asks for breaking articles only
	BreakingOnly
)

// Policy captures everything that differs between selector kinds
type Policy struct {
	// Timeout is the hard ceiling for the origin request
	Timeout time.Duration

	// DefaultCount replaces counts below one
	DefaultCount int

	Breaking BreakingFilter

	// OverFetch multiplies the requested limit so ranking has candidates
	OverFetch int

	// MaxLimit caps the limit sent to the origin, zero for no cap
	MaxLimit int

	// Ranked applies the trending presentation order
	Ranked bool

	// FanOut issues one request per selector category
	FanOut bool
}

// Fetch timeout classes
const (
	OrdinaryTimeout = 5 * time.Second
	BreakingTimeout = 10 * time.Second
)

var policies = map[SelectorKind]Policy{
	KindCategory: {Timeout: OrdinaryTimeout, DefaultCount: 6, Breaking: BreakingExclude},
	KindPage:     {Timeout: OrdinaryTimeout, DefaultCount: 6, Breaking: BreakingAny},
	KindBreaking: {Timeout: BreakingTimeout, DefaultCount: 5, Breaking: BreakingOnly},
	KindTrending: {Timeout: OrdinaryTimeout, DefaultCount: 5, Breaking: BreakingAny, OverFetch: 3, MaxLimit: 50, Ranked: true},
	KindSide:     {Timeout: OrdinaryTimeout, DefaultCount: 4, Breaking: BreakingExclude, FanOut: true},
}

// PolicyFor returns the fetch policy of a selector kind
func PolicyFor(kind SelectorKind) Policy {
	if p, ok := policies[kind]; ok {
		return p
	}
	return policies[KindCategory]
}

// Limit returns the origin limit for a requested count
func (p Policy) Limit(count int) int {
	limit := count
	if p.OverFetch > 1 {
		limit = count * p.OverFetch
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if limit < count {
		limit = count
	}
	return limit
}
