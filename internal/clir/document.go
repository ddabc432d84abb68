// Package clir defines the document model shared by the corpus sources, the
// index builder, and the export snapshot.
package clir

import (
	"strings"
	"unicode"
)

const maxNamedEntities = 10

// Document is one article in the batch handed to the index builder. The
// identifier is assigned by the builder in ingestion order; corpus sources
// leave it zero. TokenCount is recomputed during the build and any provided
// value is not trusted.
type Document struct {
	ID            int       `json:"doc_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	URL           string    `json:"url"`
	Date          string    `json:"date,omitempty"`
	Language      string    `json:"language"`
	TokenCount    int       `json:"tokens"`
	NamedEntities []string  `json:"named_entities,omitempty"`
	Embedding     []float64 `json:"word_embeddings,omitempty"`
}

// Valid reports whether the document carries the minimum fields the builder
// expects. The builder itself never rejects a document; callers filter with
// this before building.
func (d Document) Valid() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Body) != ""
}

// FilterValid returns the documents that pass Valid, preserving order.
func FilterValid(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d.Valid() {
			out = append(out, d)
		}
	}
	return out
}

// ExtractNamedEntities pulls up to ten unique capitalised words out of the
// text. It is a cheap heuristic, not an NER model; sources that already
// provide entities keep theirs.
func ExtractNamedEntities(text string) []string {
	seen := make(map[string]struct{})
	entities := make([]string, 0, maxNamedEntities)
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) < 2 {
			continue
		}
		runes := []rune(word)
		if !unicode.IsUpper(runes[0]) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		entities = append(entities, word)
		if len(entities) == maxNamedEntities {
			break
		}
	}
	return entities
}
