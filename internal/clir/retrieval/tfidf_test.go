package retrieval

import (
	"math"
	"testing"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
)

// Two-character titles are dropped by the tokenizer, so only the bodies are
// indexed: doc 0 "cat dog", doc 1 "cat cat mouse", doc 2 "dog mouse mouse".
func buildTestIndex() *index.InvertedIndex {
	return index.Build([]clir.Document{
		{Title: "d0", Body: "cat dog"},
		{Title: "d1", Body: "cat cat mouse"},
		{Title: "d2", Body: "dog mouse mouse"},
	})
}

func TestTFIDFScoreExact(t *testing.T) {
	idx := buildTestIndex()
	model := NewTFIDF(idx)

	// df(cat)=2, N=3: idf = ln(4/3) + 1.
	idf := math.Log(4.0/3.0) + 1

	tests := []struct {
		name  string
		terms []string
		docID int
		want  float64
	}{
		{"single occurrence", []string{"cat"}, 0, math.Log(2) * idf},
		{"double occurrence", []string{"cat"}, 1, math.Log(3) * idf},
		{"term absent from doc", []string{"cat"}, 2, 0},
		{"unknown term", []string{"elephant"}, 0, 0},
		{"unknown doc id", []string{"cat"}, 99, 0},
		{"empty query", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Score(tt.terms, tt.docID)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score(%v, %d) = %v, want %v", tt.terms, tt.docID, got, tt.want)
			}
		})
	}
}

func TestTFIDFHigherTFScoresHigher(t *testing.T) {
	idx := buildTestIndex()
	model := NewTFIDF(idx)

	lower := model.Score([]string{"cat"}, 0)
	higher := model.Score([]string{"cat"}, 1)
	if higher <= lower {
		t.Errorf("tf=2 scored %v, tf=1 scored %v; want strictly higher", higher, lower)
	}
}

func TestTFIDFMultiTermAdditive(t *testing.T) {
	idx := buildTestIndex()
	model := NewTFIDF(idx)

	catOnly := model.Score([]string{"cat"}, 0)
	dogOnly := model.Score([]string{"dog"}, 0)
	both := model.Score([]string{"cat", "dog"}, 0)
	if math.Abs(both-(catOnly+dogOnly)) > 1e-12 {
		t.Errorf("combined score %v != %v + %v", both, catOnly, dogOnly)
	}
}

func TestTFIDFRepeatedQueryTermCountsTwice(t *testing.T) {
	idx := buildTestIndex()
	model := NewTFIDF(idx)

	once := model.Score([]string{"cat"}, 1)
	twice := model.Score([]string{"cat", "cat"}, 1)
	if math.Abs(twice-2*once) > 1e-12 {
		t.Errorf("repeated term score %v, want %v", twice, 2*once)
	}
}

func TestTFIDFEmptyIndex(t *testing.T) {
	idx := index.Build(nil)
	model := NewTFIDF(idx)
	if got := model.Score([]string{"cat"}, 0); got != 0 {
		t.Errorf("Score on empty index = %v, want 0", got)
	}
}
