package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/search"
)

func newTestExporter(t *testing.T) (*Exporter, *search.Orchestrator) {
	t.Helper()
	docs := []clir.Document{
		{Title: "d0", Body: "cat dog", URL: "http://example.com/0", Language: "en"},
		{Title: "d1", Body: "cat cat mouse", URL: "http://example.com/1", Language: "en"},
		{Title: "d2", Body: "dog mouse mouse", URL: "http://example.com/2", Language: "en"},
	}
	idx := index.Build(docs)
	registry := retrieval.NewRegistry(idx)
	orch := search.New(idx, registry, search.Options{})
	exp := New(docs, idx, orch.History(), registry, Options{
		TranslationEnabled: true,
		EmbeddingsEnabled:  false,
	})
	return exp, orch
}

func TestExportSnapshotShape(t *testing.T) {
	exp, orch := newTestExporter(t)
	if _, err := orch.Search(context.Background(), "cat", retrieval.MethodBM25, 10, ""); err != nil {
		t.Fatal(err)
	}

	snap := exp.Export()

	if snap.Metadata.SystemName == "" {
		t.Error("metadata system name empty")
	}
	if snap.Metadata.TotalDocuments != 3 {
		t.Errorf("metadata TotalDocuments = %d, want 3", snap.Metadata.TotalDocuments)
	}
	if !snap.Metadata.TranslationEnabled || snap.Metadata.EmbeddingsEnabled {
		t.Errorf("capability flags = %+v", snap.Metadata)
	}
	if snap.Metadata.ExportTimestamp.IsZero() {
		t.Error("export timestamp not set")
	}

	if snap.IndexStatistics.TotalDocuments != 3 {
		t.Errorf("statistics TotalDocuments = %d", snap.IndexStatistics.TotalDocuments)
	}
	if snap.IndexStatistics.VocabularySize != 3 {
		t.Errorf("statistics VocabularySize = %d", snap.IndexStatistics.VocabularySize)
	}
	if snap.IndexStatistics.TotalPostings != 6 {
		t.Errorf("statistics TotalPostings = %d", snap.IndexStatistics.TotalPostings)
	}
	if len(snap.IndexStatistics.TopFrequentTerms) != 3 {
		t.Errorf("top terms count = %d", len(snap.IndexStatistics.TopFrequentTerms))
	}

	if len(snap.SearchHistory) != 1 {
		t.Errorf("search history entries = %d, want 1", len(snap.SearchHistory))
	}
	if _, ok := snap.RetrievalModels["bm25"]; !ok {
		t.Error("retrieval models missing bm25")
	}
	if _, ok := snap.RetrievalModels["tfidf"]; !ok {
		t.Error("retrieval models missing tfidf")
	}
}

func TestExportRoundTrip(t *testing.T) {
	exp, orch := newTestExporter(t)
	if _, err := orch.Search(context.Background(), "mouse", retrieval.MethodTFIDF, 5, ""); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := exp.Write(&buf); err != nil {
		t.Fatal(err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}

	if decoded.InvertedIndex.TotalDocs != 3 {
		t.Errorf("round-trip TotalDocs = %d, want 3", decoded.InvertedIndex.TotalDocs)
	}
	if len(decoded.InvertedIndex.Vocabulary) != 3 {
		t.Errorf("round-trip vocabulary size = %d, want 3", len(decoded.InvertedIndex.Vocabulary))
	}
	pl, ok := decoded.InvertedIndex.Index["cat"]
	if !ok {
		t.Fatal("round-trip lost posting list for cat")
	}
	if len(pl) != 2 || pl[0].DocID != 0 || pl[0].TF != 1 || pl[1].DocID != 1 || pl[1].TF != 2 {
		t.Errorf("round-trip posting list for cat = %v", pl)
	}
	if len(decoded.SearchHistory) != 1 || decoded.SearchHistory[0].Query != "mouse" {
		t.Errorf("round-trip history = %+v", decoded.SearchHistory)
	}
	if len(decoded.Documents) != 3 {
		t.Errorf("round-trip documents = %d, want 3", len(decoded.Documents))
	}
}

func TestWriteFileAtomic(t *testing.T) {
	exp, _ := newTestExporter(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := exp.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("written file does not parse: %v", err)
	}
	if decoded.Metadata.TotalDocuments != 3 {
		t.Errorf("written TotalDocuments = %d, want 3", decoded.Metadata.TotalDocuments)
	}

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only snapshot.json", names)
	}
}

func TestExportIsReadOnly(t *testing.T) {
	exp, orch := newTestExporter(t)

	first := exp.Export()
	if _, err := orch.Search(context.Background(), "cat", retrieval.MethodBM25, 10, ""); err != nil {
		t.Fatal(err)
	}
	second := exp.Export()

	if len(first.SearchHistory) != 0 {
		t.Errorf("first snapshot history = %d, want 0", len(first.SearchHistory))
	}
	if len(second.SearchHistory) != 1 {
		t.Errorf("second snapshot history = %d, want 1", len(second.SearchHistory))
	}
}
