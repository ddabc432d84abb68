// Package retrieval implements the scoring models that rank documents
// against a tokenised query. Models are pure functions of the built index:
// they never mutate it, so one model instance serves concurrent searches.
package retrieval

import (
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
)

// Method names a retrieval model variant. The set is closed; new variants
// are added here and registered in NewRegistry.
type Method string

const (
	MethodTFIDF Method = "tfidf"
	MethodBM25  Method = "bm25"
)

// ParseMethod maps a request string to a Method. Unknown strings fall back
// to BM25 rather than failing the search.
func ParseMethod(s string) Method {
	switch Method(s) {
	case MethodTFIDF:
		return MethodTFIDF
	case MethodBM25:
		return MethodBM25
	default:
		return MethodBM25
	}
}

// Model scores a single document against query terms. Score must return a
// value ≥ 0 and exactly 0 when the document matches no query term.
type Model interface {
	Name() Method
	Score(queryTerms []string, docID int) float64
}

// Registry holds the engine's model instances keyed by Method. Parameters
// are bound at construction and immutable afterwards.
type Registry struct {
	models map[Method]Model
	order  []Method
}

// NewRegistry builds the fixed model set over the given index.
func NewRegistry(idx *index.InvertedIndex) *Registry {
	tfidf := NewTFIDF(idx)
	bm25 := NewBM25(idx, DefaultK1, DefaultB)
	return &Registry{
		models: map[Method]Model{
			MethodTFIDF: tfidf,
			MethodBM25:  bm25,
		},
		order: []Method{MethodTFIDF, MethodBM25},
	}
}

// Get returns the model for a method, falling back to BM25 for unknown
// methods.
func (r *Registry) Get(method Method) Model {
	if m, ok := r.models[method]; ok {
		return m
	}
	return r.models[MethodBM25]
}

// Methods returns the registered methods in a fixed order.
func (r *Registry) Methods() []Method {
	out := make([]Method, len(r.order))
	copy(out, r.order)
	return out
}

// Parameters describes each model's bound parameters for the export
// snapshot.
func (r *Registry) Parameters() map[string]ModelInfo {
	info := make(map[string]ModelInfo, len(r.models))
	for method, model := range r.models {
		mi := ModelInfo{Name: describe(method)}
		if bm, ok := model.(*BM25); ok {
			mi.Parameters = map[string]float64{"k1": bm.k1, "b": bm.b}
		}
		info[string(method)] = mi
	}
	return info
}

// ModelInfo is the exported description of one retrieval model.
type ModelInfo struct {
	Name       string             `json:"name"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

func describe(m Method) string {
	switch m {
	case MethodTFIDF:
		return "TF-IDF"
	case MethodBM25:
		return "BM25 (Okapi)"
	default:
		return string(m)
	}
}
