package domain

import (
	"testing"
	"time"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		kind    SelectorKind
		wantErr bool
	}{
		{input: "National", want: "National", kind: KindCategory},
		{input: "category:sports", want: "Sports", kind: KindCategory},
		{input: "page:home", want: "page:home", kind: KindPage},
		{input: "breaking", want: "breaking", kind: KindBreaking},
		{input: "TRENDING", want: "trending", kind: KindTrending},
		{input: "side:Sports, health", want: "side:Sports,Health", kind: KindSide},
		{input: "", wantErr: true},
		{input: "Weather", wantErr: true},
		{input: "page:", wantErr: true},
		{input: "side:", wantErr: true},
		{input: "side:Sports,Weather", wantErr: true},
		{input: "bogus:thing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel, err := ParseSelector(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSelector(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelector(%q) returned error: %v", tt.input, err)
			}
			if sel.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", sel.Kind, tt.kind)
			}
			if sel.String() != tt.want {
				t.Errorf("String() = %q, want %q", sel.String(), tt.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey(CategorySelector(CategoryNational), 6); got != "content:National:6" {
		t.Errorf("CacheKey = %q", got)
	}
	if got := CacheKey(SideSelector(CategorySports, CategoryHealth), 4); got != "content:side:Sports,Health:4" {
		t.Errorf("CacheKey = %q", got)
	}
	if got := DetailCacheKey("abc"); got != "content:detail:abc:1" {
		t.Errorf("DetailCacheKey = %q", got)
	}
}

func TestPolicyFor(t *testing.T) {
	if PolicyFor(KindBreaking).Timeout != 10*time.Second {
		t.Error("breaking lists should use the 10s ceiling")
	}
	for _, kind := range []SelectorKind{KindCategory, KindPage, KindTrending, KindSide} {
		if PolicyFor(kind).Timeout != 5*time.Second {
			t.Errorf("%s should use the 5s ceiling", kind)
		}
	}
	if !PolicyFor(KindTrending).Ranked {
		t.Error("trending policy should be ranked")
	}
	if PolicyFor(KindCategory).Breaking != BreakingExclude {
		t.Error("category policy should exclude breaking news")
	}
}

func TestPolicy_Limit(t *testing.T) {
	trending := PolicyFor(KindTrending)
	if got := trending.Limit(5); got != 15 {
		t.Errorf("trending Limit(5) = %d, want 15", got)
	}
	if got := trending.Limit(40); got != 50 {
		t.Errorf("trending Limit(40) = %d, want cap 50", got)
	}
	if got := PolicyFor(KindCategory).Limit(6); got != 6 {
		t.Errorf("category Limit(6) = %d, want 6", got)
	}
}

func TestSideSelector_CopiesCategories(t *testing.T) {
	cats := []Category{CategorySports}
	sel := SideSelector(cats...)
	cats[0] = CategoryHealth
	if sel.Categories[0] != CategorySports {
		t.Error("SideSelector should copy its categories")
	}
}
