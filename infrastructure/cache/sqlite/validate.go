// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Statements are always parameterized, suspicious keys are only logged

package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"newsdesk-api/core/interfaces"
)

const (
	maxKeyLength   = 255
	maxValueLength = 8 << 20
)

var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey rejects keys SQLite or the cache schema cannot hold and logs
// keys that look like injection attempts
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
			break
		}
	}

	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}
