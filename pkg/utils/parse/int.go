// ABOUTME: Utility functions for parsing integers from strings
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
)

// IntOrDefault parses an integer, returning def for empty or invalid input
func IntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
