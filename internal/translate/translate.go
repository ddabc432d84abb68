// Package translate defines the optional cross-lingual capabilities the
// engine consumes: query translation and text embedding. Both are external
// services reached over HTTP and both fail open — when a capability is
// absent or failing, callers degrade the feature instead of failing the
// request.
package translate

import (
	"context"
)

// Translator converts text between languages. Implementations must be safe
// for concurrent use.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Embedder produces a dense vector for a text. Implementations must be safe
// for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// NoopTranslator is the substitute used when no translation capability is
// configured: it returns the input unchanged, so searches proceed with the
// untranslated query.
type NoopTranslator struct{}

// Translate returns text as-is.
func (NoopTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

// NoopEmbedder is the substitute used when no embedding capability is
// configured: it returns no vector and no error.
type NoopEmbedder struct{}

// Embed returns nil, leaving documents without embeddings.
func (NoopEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return nil, nil
}
