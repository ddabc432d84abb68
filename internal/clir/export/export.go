// Package export assembles the complete engine snapshot — documents, index,
// statistics, search history, and model registry — and serialises it as one
// JSON document. Exporting is a pure read of current state.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/search"
)

const defaultTopTerms = 20

// Metadata describes the run that produced the snapshot.
type Metadata struct {
	SystemName         string    `json:"system_name"`
	ExportTimestamp    time.Time `json:"export_timestamp"`
	TotalDocuments     int       `json:"total_documents"`
	VocabularyTerms    int       `json:"total_vocabulary_terms"`
	TranslationEnabled bool      `json:"translation_enabled"`
	EmbeddingsEnabled  bool      `json:"embeddings_enabled"`
}

// IndexStatistics summarises the built index.
type IndexStatistics struct {
	TotalDocuments        int              `json:"total_documents"`
	VocabularySize        int              `json:"vocabulary_size"`
	AverageDocumentLength float64          `json:"average_document_length"`
	TotalPostings         int              `json:"total_postings"`
	TopFrequentTerms      []index.TermStat `json:"top_20_frequent_terms"`
}

// Snapshot is the complete boundary object produced by Export.
type Snapshot struct {
	Metadata        Metadata                       `json:"metadata"`
	Documents       []clir.Document                `json:"documents"`
	InvertedIndex   index.Snapshot                 `json:"inverted_index"`
	IndexStatistics IndexStatistics                `json:"index_statistics"`
	SearchHistory   []search.Record                `json:"search_history"`
	RetrievalModels map[string]retrieval.ModelInfo `json:"retrieval_models"`
}

// Exporter reads engine state into snapshots. All referenced state is either
// immutable (documents, index, registry) or copied under its own lock
// (history), so Export never blocks searches.
type Exporter struct {
	documents          []clir.Document
	idx                *index.InvertedIndex
	history            *search.History
	registry           *retrieval.Registry
	translationEnabled bool
	embeddingsEnabled  bool
	topTerms           int
	logger             *slog.Logger
}

// Options configures an Exporter.
type Options struct {
	TranslationEnabled bool
	EmbeddingsEnabled  bool
	TopTerms           int
}

// New creates an Exporter over the engine's state.
func New(documents []clir.Document, idx *index.InvertedIndex, history *search.History, registry *retrieval.Registry, opts Options) *Exporter {
	if opts.TopTerms <= 0 {
		opts.TopTerms = defaultTopTerms
	}
	return &Exporter{
		documents:          documents,
		idx:                idx,
		history:            history,
		registry:           registry,
		translationEnabled: opts.TranslationEnabled,
		embeddingsEnabled:  opts.EmbeddingsEnabled,
		topTerms:           opts.TopTerms,
		logger:             slog.Default().With("component", "export"),
	}
}

// Export assembles the snapshot from current state.
func (e *Exporter) Export() Snapshot {
	return Snapshot{
		Metadata: Metadata{
			SystemName:         "Cross-Lingual Information Retrieval System",
			ExportTimestamp:    time.Now().UTC(),
			TotalDocuments:     len(e.documents),
			VocabularyTerms:    e.idx.VocabularySize(),
			TranslationEnabled: e.translationEnabled,
			EmbeddingsEnabled:  e.embeddingsEnabled,
		},
		Documents:     e.documents,
		InvertedIndex: e.idx.Snapshot(),
		IndexStatistics: IndexStatistics{
			TotalDocuments:        e.idx.TotalDocs(),
			VocabularySize:        e.idx.VocabularySize(),
			AverageDocumentLength: e.idx.AvgDocLength(),
			TotalPostings:         e.idx.TotalPostings(),
			TopFrequentTerms:      e.idx.TopTerms(e.topTerms),
		},
		SearchHistory:   e.history.Snapshot(),
		RetrievalModels: e.registry.Parameters(),
	}
}

// Write JSON-encodes the snapshot to w.
func (e *Exporter) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e.Export()); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// WriteFile writes the snapshot to path via a temp file and rename, so a
// crash mid-write never leaves a truncated snapshot behind.
func (e *Exporter) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("creating temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	if err := e.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}

	info, err := os.Stat(path)
	if err == nil {
		e.logger.Info("snapshot exported",
			"path", path,
			"size_bytes", info.Size(),
			"documents", len(e.documents),
			"history_entries", e.history.Len(),
		)
	}
	return nil
}
