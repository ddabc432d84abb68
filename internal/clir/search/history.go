package search

import (
	"sync"
	"time"
)

// ResultEntry is one ranked document inside a history record.
type ResultEntry struct {
	DocID int     `json:"doc_id"`
	Score float64 `json:"score"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
}

// Record captures one completed search. Records are immutable once appended.
type Record struct {
	Query           string        `json:"query"`
	TranslatedQuery string        `json:"translated_query,omitempty"`
	QueryLanguage   string        `json:"query_language"`
	Method          string        `json:"method"`
	NumResults      int           `json:"num_results"`
	LatencySeconds  float64       `json:"latency_seconds"`
	Timestamp       time.Time     `json:"timestamp"`
	Results         []ResultEntry `json:"results"`
}

// History is the append-only log of searches run against one orchestrator.
// It is the only mutable state shared by concurrent searches, so appends are
// mutex-serialised; record order carries no meaning beyond append atomicity.
type History struct {
	mu      sync.Mutex
	records []Record
}

// NewHistory creates an empty log.
func NewHistory() *History {
	return &History{}
}

// Append adds a record to the log.
func (h *History) Append(rec Record) {
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
}

// Len returns the number of recorded searches.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Snapshot copies the log for export. The copy is independent of later
// appends.
func (h *History) Snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}
