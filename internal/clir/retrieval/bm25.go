package retrieval

import (
	"math"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
)

// Default BM25 parameters: k1 controls term-frequency saturation, b the
// strength of document-length normalisation.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// BM25 is the Okapi BM25 ranking function. Parameters are bound at
// construction and immutable afterwards.
type BM25 struct {
	idx *index.InvertedIndex
	k1  float64
	b   float64
}

// NewBM25 creates a BM25 model with the given parameters.
func NewBM25(idx *index.InvertedIndex, k1, b float64) *BM25 {
	return &BM25{idx: idx, k1: k1, b: b}
}

// Name implements Model.
func (m *BM25) Name() Method {
	return MethodBM25
}

// K1 returns the bound term-frequency saturation parameter.
func (m *BM25) K1() float64 { return m.k1 }

// B returns the bound length-normalisation parameter.
func (m *BM25) B() float64 { return m.b }

// Score sums the BM25 contribution of each query term:
//
//	idf * tf*(k1+1) / (tf + k1*(1 - b + b*docLen/avgdl))
//
// with idf = ln((N-df+0.5)/(df+0.5) + 1). A document id the index does not
// know falls back to the average document length. An average length of zero
// means there is nothing to score and every term contributes 0.
func (m *BM25) Score(queryTerms []string, docID int) float64 {
	score := 0.0
	n := float64(m.idx.TotalDocs())
	avgdl := m.idx.AvgDocLength()

	docLen, ok := m.idx.DocLength(docID)
	docLength := float64(docLen)
	if !ok {
		docLength = avgdl
	}

	for _, term := range queryTerms {
		df := m.idx.DocumentFrequency(term)
		if df == 0 {
			continue
		}
		idf := math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)

		tf := float64(m.idx.TermFrequency(term, docID))
		if tf == 0 || avgdl == 0 {
			continue
		}
		numerator := tf * (m.k1 + 1)
		denominator := tf + m.k1*(1-m.b+m.b*(docLength/avgdl))
		score += idf * (numerator / denominator)
	}
	return score
}
