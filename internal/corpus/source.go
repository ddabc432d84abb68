// Package corpus loads the document batch the index is built from. Sources
// are collaborator-facing adapters: the crawling and extraction pipeline
// lives elsewhere and hands this engine a finished batch through a file, a
// PostgreSQL table, or a Kafka topic.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
)

// Source yields one ordered document batch.
type Source interface {
	Load(ctx context.Context) ([]clir.Document, error)
}

// FileSource reads a JSON array of documents from disk, the same shape the
// export snapshot uses for its documents field.
type FileSource struct {
	Path   string
	logger *slog.Logger
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		Path:   path,
		logger: slog.Default().With("component", "corpus-file"),
	}
}

// Load implements Source.
func (s *FileSource) Load(_ context.Context) ([]clir.Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", s.Path, err)
	}
	var docs []clir.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", s.Path, err)
	}
	s.logger.Info("corpus loaded from file", "path", s.Path, "documents", len(docs))
	return docs, nil
}

// Prepare filters invalid documents and fills in derived fields the batch may
// be missing: language defaults to the index working language and named
// entities are extracted when absent. Order is preserved.
func Prepare(docs []clir.Document, language string) []clir.Document {
	prepared := clir.FilterValid(docs)
	for i := range prepared {
		if prepared[i].Language == "" {
			prepared[i].Language = language
		}
		if len(prepared[i].NamedEntities) == 0 {
			prepared[i].NamedEntities = clir.ExtractNamedEntities(prepared[i].Body)
		}
	}
	return prepared
}
