// ABOUTME: Time utilities for parsing origin timestamps and building display labels
// ABOUTME: Relative labels come from result ordering, not from the wall clock

package time

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

// DisplayLayout is the layout of the display date shown with each article
const DisplayLayout = "January 2, 2006"

// ParseFlexibleTime parses the many timestamp shapes the origin has used:
// RFC3339, database dates, plain dates and unix seconds or milliseconds.
// Returns the zero time when nothing matches.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	if n, err := strconv.ParseInt(timeStr, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}

	t, err := dateparse.ParseIn(timeStr, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}

// FormatDisplayDate renders t with DisplayLayout, empty for the zero time
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// TimeAgo returns the relative label for the item at position index in a
// result list fetched at fetchedAt. Item i is treated as published i+1
// hours before the fetch.
func TimeAgo(fetchedAt time.Time, index int) string {
	if index < 0 {
		index = 0
	}
	then := fetchedAt.Add(-time.Duration(index+1) * time.Hour)
	return humanize.RelTime(then, fetchedAt, "ago", "from now")
}
