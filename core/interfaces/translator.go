package interfaces

import "context"

// Translator is the external translation capability. Both calls are
// best-effort and may fail independently of each other.
type Translator interface {
	// Translate rewrites text from sourceLang into targetLang.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// DetectIsTargetLanguage reports whether text is already written in targetLang.
	DetectIsTargetLanguage(ctx context.Context, text, targetLang string) (bool, error)
}
