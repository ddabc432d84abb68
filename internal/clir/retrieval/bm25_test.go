package retrieval

import (
	"math"
	"testing"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
)

func bm25Contribution(tf, docLen, avgdl, n, df, k1, b float64) float64 {
	idf := math.Log((n-df+0.5)/(df+0.5) + 1)
	return idf * (tf * (k1 + 1)) / (tf + k1*(1-b+b*docLen/avgdl))
}

func TestBM25ScoreExact(t *testing.T) {
	idx := buildTestIndex()
	model := NewBM25(idx, DefaultK1, DefaultB)

	avgdl := 8.0 / 3.0

	tests := []struct {
		name  string
		terms []string
		docID int
		want  float64
	}{
		{
			name:  "single occurrence short doc",
			terms: []string{"cat"},
			docID: 0,
			want:  bm25Contribution(1, 2, avgdl, 3, 2, DefaultK1, DefaultB),
		},
		{
			name:  "double occurrence",
			terms: []string{"cat"},
			docID: 1,
			want:  bm25Contribution(2, 3, avgdl, 3, 2, DefaultK1, DefaultB),
		},
		{"term absent from doc", []string{"cat"}, 2, 0},
		{"unknown term", []string{"elephant"}, 1, 0},
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

func TestBM25HigherTFScoresHigher(t *testing.T) {
	idx := buildTestIndex()
	model := NewBM25(idx, DefaultK1, DefaultB)

	lower := model.Score([]string{"cat"}, 0)
	higher := model.Score([]string{"cat"}, 1)
	if higher <= lower {
		t.Errorf("tf=2 scored %v, tf=1 scored %v; want strictly higher", higher, lower)
	}
}

func TestBM25TermFrequencySaturation(t *testing.T) {
	// With k1 bounding saturation, doubling tf must less than double the
	// score contribution.
	idx := index.Build([]clir.Document{
		{Title: "d0", Body: "cat cat"},
		{Title: "d1", Body: "cat cat cat cat"},
		{Title: "d2", Body: "dog dog"},
	})
	model := NewBM25(idx, DefaultK1, 0) // b=0 removes length effects

	s1 := model.Score([]string{"cat"}, 0)
	s2 := model.Score([]string{"cat"}, 1)
	if s2 <= s1 {
		t.Fatalf("tf=4 scored %v, tf=2 scored %v; want higher", s2, s1)
	}
	if s2 >= 2*s1 {
		t.Errorf("tf=4 scored %v, more than double tf=2 score %v; saturation missing", s2, s1)
	}
}

func TestBM25UnknownDocIDUsesAverageLength(t *testing.T) {
	idx := buildTestIndex()
	model := NewBM25(idx, DefaultK1, DefaultB)

	// A doc id outside the batch has tf=0 everywhere, so it scores 0, but
	// must not panic or produce NaN.
	got := model.Score([]string{"cat"}, 99)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("Score for unknown doc id = %v, want 0", got)
	}
}

func TestBM25EmptyIndexContributesZero(t *testing.T) {
	idx := index.Build(nil)
	model := NewBM25(idx, DefaultK1, DefaultB)
	got := model.Score([]string{"cat"}, 0)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("Score on empty index = %v, want 0", got)
	}
}

func TestBM25ZeroAvgdlGuard(t *testing.T) {
	// Every document tokenises to nothing: avgdl is 0 and scoring must not
	// divide by it.
	idx := index.Build([]clir.Document{{Title: "a", Body: "?!"}})
	model := NewBM25(idx, DefaultK1, DefaultB)
	got := model.Score([]string{"cat"}, 0)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("Score with avgdl=0 = %v, want 0", got)
	}
}

func TestBM25Parameters(t *testing.T) {
	idx := buildTestIndex()
	model := NewBM25(idx, 1.2, 0.6)
	if model.K1() != 1.2 || model.B() != 0.6 {
		t.Errorf("parameters = (%v, %v), want (1.2, 0.6)", model.K1(), model.B())
	}
}
