package retrieval

import (
	"math"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
)

// TFIDF scores documents with log-scaled term frequency and smoothed inverse
// document frequency.
type TFIDF struct {
	idx *index.InvertedIndex
}

// NewTFIDF creates a TF-IDF model over the built index.
func NewTFIDF(idx *index.InvertedIndex) *TFIDF {
	return &TFIDF{idx: idx}
}

// Name implements Model.
func (m *TFIDF) Name() Method {
	return MethodTFIDF
}

// Score sums ln(1+tf) * idf over the query terms present in the document,
// with idf = ln((N+1)/(df+1)) + 1. Terms absent from the vocabulary
// contribute nothing.
func (m *TFIDF) Score(queryTerms []string, docID int) float64 {
	score := 0.0
	n := float64(m.idx.TotalDocs())

	for _, term := range queryTerms {
		df := m.idx.DocumentFrequency(term)
		if df == 0 {
			continue
		}
		idf := math.Log((n+1)/(float64(df)+1)) + 1

		tf := m.idx.TermFrequency(term, docID)
		if tf > 0 {
			score += math.Log(1+float64(tf)) * idf
		}
	}
	return score
}
