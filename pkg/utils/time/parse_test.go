package time

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2024-03-15T10:30:00Z"},
		{"database", "2024-03-15 10:30:00"},
		{"unix seconds", "1710498600"},
		{"unix millis", "1710498600000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleTime(tt.input)
			if !got.Equal(want) {
				t.Errorf("ParseFlexibleTime(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}

	if !ParseFlexibleTime("").IsZero() {
		t.Error("empty string should give zero time")
	}
	if !ParseFlexibleTime("not a date at all").IsZero() {
		t.Error("garbage should give zero time")
	}
}

func TestParseWithDefault(t *testing.T) {
	def := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseWithDefault("garbage", def); !got.Equal(def) {
		t.Errorf("expected default, got %v", got)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	if got := FormatDisplayDate(d); got != "March 5, 2024" {
		t.Errorf("FormatDisplayDate = %q", got)
	}
	if FormatDisplayDate(time.Time{}) != "" {
		t.Error("zero time should format as empty")
	}
}

func TestTimeAgo(t *testing.T) {
	fetched := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	if got := TimeAgo(fetched, 0); got != "1 hour ago" {
		t.Errorf("TimeAgo(0) = %q", got)
	}
	if got := TimeAgo(fetched, 2); got != "3 hours ago" {
		t.Errorf("TimeAgo(2) = %q", got)
	}
	if got := TimeAgo(fetched, 30); got != "1 day ago" {
		t.Errorf("TimeAgo(30) = %q", got)
	}
}
