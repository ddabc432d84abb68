package corpus

import (
	"context"
	"log/slog"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/translate"
)

// AttachEmbeddings computes a dense vector for each document from its title
// and body and stores it on the document. Embedding is an optional
// enrichment: per-document failures are logged and skipped, and the number of
// documents actually embedded is returned.
func AttachEmbeddings(ctx context.Context, docs []clir.Document, embedder translate.Embedder) int {
	if embedder == nil {
		return 0
	}
	logger := slog.Default().With("component", "corpus-embed")

	embedded := 0
	for i := range docs {
		vec, err := embedder.Embed(ctx, docs[i].Title+" "+docs[i].Body)
		if err != nil {
			logger.Warn("document embedding failed", "doc_id", docs[i].ID, "error", err)
			continue
		}
		if len(vec) == 0 {
			continue
		}
		docs[i].Embedding = vec
		embedded++
	}
	if embedded > 0 {
		logger.Info("document embeddings attached", "embedded", embedded, "total", len(docs))
	}
	return embedded
}
