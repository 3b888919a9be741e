// ABOUTME: Image availability gate probes article images before they are shown
// ABOUTME: Failed or missing images get a deterministic placeholder, slow ones stay pending

package imagegate

import (
	"context"
	"time"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/workers"
)

// DefaultTimeout is the shared deadline for a whole batch of probes
const DefaultTimeout = 15 * time.Second

// Report summarizes one Resolve call
type Report struct {
	Resolved     int
	Placeholders int
	Pending      int
	TimedOut     bool
}

// Gate decides the image of every article in a batch
type Gate struct {
	prober      interfaces.ImageProber
	logger      interfaces.Logger
	placeholder *Placeholder
	timeout     time.Duration
	concurrency int
}

// Option configures a Gate
type Option func(*Gate)

// WithTimeout overrides the shared batch deadline
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithConcurrency caps simultaneous probes; zero probes everything at once
func WithConcurrency(n int) Option {
	return func(g *Gate) { g.concurrency = n }
}

// WithPlaceholder sets the placeholder builder
func WithPlaceholder(p *Placeholder) Option {
	return func(g *Gate) {
		if p != nil {
			g.placeholder = p
		}
	}
}

// WithLogger sets the logger
func WithLogger(l interfaces.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a gate. A nil prober trusts every non-empty URL.
func New(prober interfaces.ImageProber, opts ...Option) *Gate {
	g := &Gate{
		prober:      prober,
		logger:      interfaces.NopLogger{},
		placeholder: NewPlaceholder(""),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Placeholder returns the placeholder URL the gate would use for a title
func (g *Gate) Placeholder(title string) string {
	return g.placeholder.URL(title)
}

// Resolve decides the image of every article in place. Empty images get a
// placeholder immediately. Non-empty images are probed concurrently against
// one shared deadline; articles whose probe is still running when the
// deadline hits are left untouched.
func (g *Gate) Resolve(ctx context.Context, articles []domain.Article) Report {
	var report Report

	candidates := make([]int, 0, len(articles))
	for i := range articles {
		if articles[i].Image == "" {
			g.substitute(&articles[i])
			report.Placeholders++
			continue
		}
		candidates = append(candidates, i)
	}

	if len(candidates) == 0 {
		return report
	}

	if g.prober == nil {
		for _, i := range candidates {
			articles[i].ImagePending = false
			report.Resolved++
		}
		return report
	}

	urls := make([]string, len(candidates))
	for j, i := range candidates {
		urls[j] = articles[i].Image
	}

	outcome := workers.ResolveAll(ctx, len(urls), workers.ResolveOptions{
		Deadline: g.timeout,
		Limit:    g.concurrency,
	}, func(ctx context.Context, j int) (struct{}, error) {
		return struct{}{}, g.prober.Probe(ctx, urls[j])
	})

	for j, res := range outcome.Results {
		a := &articles[candidates[j]]
		switch res.State {
		case workers.StateSucceeded:
			a.ImagePending = false
			report.Resolved++
		case workers.StateFailed:
			g.logger.Debug("Image probe failed, using placeholder", map[string]interface{}{
				"id":    a.ID,
				"image": a.Image,
				"error": res.Err.Error(),
			})
			g.substitute(a)
			report.Placeholders++
		}
	}
	report.Pending = outcome.Pending()
	report.TimedOut = outcome.TimedOut

	if report.TimedOut {
		g.logger.Warn("Image gate deadline reached", map[string]interface{}{
			"pending": report.Pending,
			"total":   len(articles),
			"timeout": g.timeout.String(),
		})
	}

	return report
}

func (g *Gate) substitute(a *domain.Article) {
	a.Image = g.placeholder.URL(a.Title)
	a.ImagePending = false
}
