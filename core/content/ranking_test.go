package content

import (
	"testing"

	"newsdesk-api/core/domain"
)

func TestRankTrending(t *testing.T) {
	in := []domain.Article{
		{ID: "recent", PublishedAt: domain.PublishedAt{Unix: 300}},
		{ID: "breaking", IsBreaking: true, PublishedAt: domain.PublishedAt{Unix: 100}},
		{ID: "featured", IsFeatured: true},
		{ID: "trending-old", IsTrending: true, PublishedAt: domain.PublishedAt{Unix: 10}},
		{ID: "trending-new", IsTrending: true, PublishedAt: domain.PublishedAt{Unix: 20}},
		{ID: "older", PublishedAt: domain.PublishedAt{Unix: 200}},
	}

	got := RankTrending(in)
	want := []string{"trending-new", "trending-old", "featured", "breaking", "recent", "older"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if in[0].ID != "recent" {
		t.Error("input slice was reordered")
	}
}

func TestInterleave(t *testing.T) {
	groups := [][]domain.Article{
		{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}},
		{{ID: "b1"}},
		nil,
		{{ID: "c1"}, {ID: "a2"}, {ID: "c3"}},
	}

	got := Interleave(groups, 6)
	want := []string{"a1", "b1", "c1", "a2", "a3", "c3"}
	if len(got) != len(want) {
		t.Fatalf("got %d articles, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}

	if n := len(Interleave(groups, 2)); n != 2 {
		t.Errorf("limit not applied, got %d", n)
	}
	if n := len(Interleave(nil, 3)); n != 0 {
		t.Errorf("expected empty result, got %d", n)
	}
}
