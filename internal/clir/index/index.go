// Package index implements the in-memory inverted index. The index is built
// exactly once from a finalised document batch and is immutable afterwards,
// so concurrent readers need no locking.
package index

import (
	"sort"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/tokenizer"
)

// Posting records a term occurrence count within one document.
type Posting struct {
	DocID int `json:"doc_id"`
	TF    int `json:"tf"`
}

// PostingList is the ordered postings for one term, ascending by doc id
// because documents are indexed in id order and entries are only appended.
type PostingList []Posting

// DocMeta is the lightweight per-document metadata kept by the index.
type DocMeta struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	Language string `json:"language"`
}

// TermStat pairs a term with its document frequency, used for export
// statistics.
type TermStat struct {
	Term string `json:"term"`
	DF   int    `json:"document_frequency"`
}

// InvertedIndex maps terms to posting lists over a fixed document batch.
type InvertedIndex struct {
	postings   map[string]PostingList
	byDoc      map[string]map[int]int
	docLengths map[int]int
	docMeta    map[int]DocMeta
	vocabulary map[string]struct{}
	totalDocs  int
	avgDocLen  float64
}

// Build assigns sequential ids starting at zero, tokenises title+body per
// document, and accumulates postings. It never fails: an empty batch yields
// an index with zero documents and zero average length, and a document whose
// text tokenises to nothing still occupies an id with length zero.
func Build(docs []clir.Document) *InvertedIndex {
	idx := &InvertedIndex{
		postings:   make(map[string]PostingList),
		byDoc:      make(map[string]map[int]int),
		docLengths: make(map[int]int, len(docs)),
		docMeta:    make(map[int]DocMeta, len(docs)),
		vocabulary: make(map[string]struct{}),
		totalDocs:  len(docs),
	}

	totalTokens := 0
	for docID := range docs {
		doc := &docs[docID]
		doc.ID = docID
		idx.docMeta[docID] = DocMeta{
			Title:    doc.Title,
			URL:      doc.URL,
			Date:     doc.Date,
			Language: doc.Language,
		}

		tokens := tokenizer.Tokenize(doc.Title + " " + doc.Body)
		doc.TokenCount = len(tokens)
		idx.docLengths[docID] = len(tokens)
		totalTokens += len(tokens)

		termFreq := make(map[string]int)
		for _, term := range tokens {
			termFreq[term]++
		}
		for term, tf := range termFreq {
			idx.vocabulary[term] = struct{}{}
			idx.postings[term] = append(idx.postings[term], Posting{DocID: docID, TF: tf})
			if idx.byDoc[term] == nil {
				idx.byDoc[term] = make(map[int]int)
			}
			idx.byDoc[term][docID] = tf
		}
	}

	if idx.totalDocs > 0 {
		idx.avgDocLen = float64(totalTokens) / float64(idx.totalDocs)
	}
	return idx
}

// TotalDocs returns the number of indexed documents.
func (idx *InvertedIndex) TotalDocs() int {
	return idx.totalDocs
}

// AvgDocLength returns the mean token count per document, 0 for an empty
// index.
func (idx *InvertedIndex) AvgDocLength() float64 {
	return idx.avgDocLen
}

// DocumentFrequency returns the number of documents containing term.
func (idx *InvertedIndex) DocumentFrequency(term string) int {
	return len(idx.postings[term])
}

// Postings returns the posting list for term, nil for unknown terms. The
// returned slice must not be mutated.
func (idx *InvertedIndex) Postings(term string) PostingList {
	return idx.postings[term]
}

// TermFrequency returns term's occurrence count in the given document, 0
// when the term or document is absent.
func (idx *InvertedIndex) TermFrequency(term string, docID int) int {
	return idx.byDoc[term][docID]
}

// DocLength returns the token count of the given document and whether the
// id is known.
func (idx *InvertedIndex) DocLength(docID int) (int, bool) {
	n, ok := idx.docLengths[docID]
	return n, ok
}

// Metadata returns the stored metadata for a document id.
func (idx *InvertedIndex) Metadata(docID int) (DocMeta, bool) {
	m, ok := idx.docMeta[docID]
	return m, ok
}

// VocabularySize returns the number of distinct indexed terms.
func (idx *InvertedIndex) VocabularySize() int {
	return len(idx.vocabulary)
}

// Vocabulary returns all indexed terms in lexicographic order.
func (idx *InvertedIndex) Vocabulary() []string {
	terms := make([]string, 0, len(idx.vocabulary))
	for term := range idx.vocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// TotalPostings returns the summed length of all posting lists.
func (idx *InvertedIndex) TotalPostings() int {
	total := 0
	for _, pl := range idx.postings {
		total += len(pl)
	}
	return total
}

// TopTerms returns the n most document-frequent terms, ties broken by term
// so the result is deterministic.
func (idx *InvertedIndex) TopTerms(n int) []TermStat {
	stats := make([]TermStat, 0, len(idx.postings))
	for term, pl := range idx.postings {
		stats = append(stats, TermStat{Term: term, DF: len(pl)})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DF != stats[j].DF {
			return stats[i].DF > stats[j].DF
		}
		return stats[i].Term < stats[j].Term
	})
	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// Snapshot is the serialisable form of the index used by the export module.
type Snapshot struct {
	Index        map[string]PostingList `json:"index"`
	DocLengths   map[int]int            `json:"doc_lengths"`
	DocMetadata  map[int]DocMeta        `json:"doc_metadata"`
	Vocabulary   []string               `json:"vocabulary"`
	TotalDocs    int                    `json:"total_docs"`
	AvgDocLength float64                `json:"avg_doc_length"`
}

// Snapshot copies the index state into its export form. The copy is deep
// enough that callers cannot alias internal maps.
func (idx *InvertedIndex) Snapshot() Snapshot {
	indexCopy := make(map[string]PostingList, len(idx.postings))
	for term, pl := range idx.postings {
		cp := make(PostingList, len(pl))
		copy(cp, pl)
		indexCopy[term] = cp
	}
	lengths := make(map[int]int, len(idx.docLengths))
	for id, n := range idx.docLengths {
		lengths[id] = n
	}
	meta := make(map[int]DocMeta, len(idx.docMeta))
	for id, m := range idx.docMeta {
		meta[id] = m
	}
	return Snapshot{
		Index:        indexCopy,
		DocLengths:   lengths,
		DocMetadata:  meta,
		Vocabulary:   idx.Vocabulary(),
		TotalDocs:    idx.totalDocs,
		AvgDocLength: idx.avgDocLen,
	}
}
