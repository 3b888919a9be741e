// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the content core

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides the persistent fallback store
	Cache Cache

	// HTTPClient talks to the origin service
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Translator is optional; nil disables translation
	Translator Translator

	// ImageProber is optional; nil trusts every non-empty image URL
	ImageProber ImageProber
}
