package search

import (
	"sync"
	"testing"
	"time"
)

func TestHistoryAppendAndLen(t *testing.T) {
	h := NewHistory()
	if h.Len() != 0 {
		t.Fatalf("new history Len = %d", h.Len())
	}
	h.Append(Record{Query: "one", Timestamp: time.Now()})
	h.Append(Record{Query: "two", Timestamp: time.Now()})
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestHistorySnapshotIndependent(t *testing.T) {
	h := NewHistory()
	h.Append(Record{Query: "one"})

	snap := h.Snapshot()
	h.Append(Record{Query: "two"})

	if len(snap) != 1 {
		t.Errorf("snapshot grew after later append: %d records", len(snap))
	}
	if snap[0].Query != "one" {
		t.Errorf("snapshot[0].Query = %q", snap[0].Query)
	}
}

func TestHistoryConcurrentAppends(t *testing.T) {
	h := NewHistory()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Append(Record{Query: "q"})
		}()
	}
	wg.Wait()

	if h.Len() != n {
		t.Errorf("Len = %d after %d concurrent appends", h.Len(), n)
	}
}
