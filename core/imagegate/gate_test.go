package imagegate

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk-api/core/domain"
)

type mockProber struct {
	ProbeFunc func(ctx context.Context, url string) error
}

func (m *mockProber) Probe(ctx context.Context, url string) error {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, url)
	}
	return nil
}

func pendingArticle(id, title, image string) domain.Article {
	return domain.Article{ID: id, Title: title, Image: image, ImagePending: true}
}

func TestGate_AllImagesLoad(t *testing.T) {
	gate := New(&mockProber{})
	articles := []domain.Article{
		pendingArticle("1", "One", "https://cdn.example.com/1.jpg"),
		pendingArticle("2", "Two", "https://cdn.example.com/2.jpg"),
	}

	report := gate.Resolve(context.Background(), articles)

	if report.Resolved != 2 || report.Placeholders != 0 || report.Pending != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	for _, a := range articles {
		if a.ImagePending {
			t.Errorf("article %s still pending", a.ID)
		}
		if !a.IsValid() {
			t.Errorf("article %s invalid", a.ID)
		}
	}
	if articles[0].Image != "https://cdn.example.com/1.jpg" {
		t.Errorf("image url changed: %s", articles[0].Image)
	}
}

func TestGate_EmptyImageGetsPlaceholder(t *testing.T) {
	gate := New(&mockProber{
		ProbeFunc: func(ctx context.Context, url string) error {
			t.Errorf("empty image should not be probed, got %q", url)
			return nil
		},
	})

	articles := []domain.Article{pendingArticle("1", "Loading latest news...", "")}
	report := gate.Resolve(context.Background(), articles)

	if report.Placeholders != 1 {
		t.Fatalf("expected one placeholder, got %+v", report)
	}
	want := NewPlaceholder("").URL("loading latest news")
	if articles[0].Image != want {
		t.Errorf("placeholder = %s, want %s", articles[0].Image, want)
	}
	if articles[0].ImagePending {
		t.Error("placeholder article must not be pending")
	}

	// A later resolution of the same title yields the same placeholder
	again := []domain.Article{pendingArticle("2", "Loading latest news...", "")}
	gate.Resolve(context.Background(), again)
	if again[0].Image != articles[0].Image {
		t.Errorf("placeholder not deterministic: %s != %s", again[0].Image, articles[0].Image)
	}
}

func TestGate_BrokenImageGetsPlaceholder(t *testing.T) {
	gate := New(&mockProber{
		ProbeFunc: func(ctx context.Context, url string) error {
			if url == "https://cdn.example.com/broken.jpg" {
				return errors.New("404")
			}
			return nil
		},
	})

	articles := []domain.Article{
		pendingArticle("1", "Healthy", "https://cdn.example.com/ok.jpg"),
		pendingArticle("2", "Market rally", "https://cdn.example.com/broken.jpg"),
	}
	report := gate.Resolve(context.Background(), articles)

	if report.Resolved != 1 || report.Placeholders != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if articles[1].Image != gate.Placeholder("Market rally") {
		t.Errorf("broken image not replaced: %s", articles[1].Image)
	}
	if articles[1].ImagePending {
		t.Error("broken image article must not be pending")
	}
}

func TestGate_TimeoutLeavesSlowArticlesPending(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	gate := New(&mockProber{
		ProbeFunc: func(ctx context.Context, url string) error {
			if url == "https://slow.example.com/a.jpg" {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return ctx.Err()
			}
			return nil
		},
	}, WithTimeout(30*time.Millisecond))

	articles := []domain.Article{
		pendingArticle("1", "Fast", "https://cdn.example.com/fast.jpg"),
		pendingArticle("2", "Slow", "https://slow.example.com/a.jpg"),
	}
	report := gate.Resolve(context.Background(), articles)

	if !report.TimedOut || report.Pending != 1 || report.Resolved != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	slow := articles[1]
	if !slow.ImagePending || slow.Image != "https://slow.example.com/a.jpg" {
		t.Errorf("slow article was modified: %+v", slow)
	}
	if articles[0].ImagePending {
		t.Error("fast article should be resolved")
	}
}

func TestGate_NilProberTrustsURLs(t *testing.T) {
	gate := New(nil)
	articles := []domain.Article{
		pendingArticle("1", "One", "https://cdn.example.com/1.jpg"),
		pendingArticle("2", "Two", ""),
	}
	report := gate.Resolve(context.Background(), articles)

	if report.Resolved != 1 || report.Placeholders != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if articles[0].ImagePending || articles[1].ImagePending {
		t.Error("no article should remain pending without a prober")
	}
}

func TestGate_EmptyBatch(t *testing.T) {
	report := New(&mockProber{}).Resolve(context.Background(), nil)
	if report != (Report{}) {
		t.Errorf("expected zero report, got %+v", report)
	}
}
