package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	payload := `[
		{"title": "First", "body": "first body", "url": "http://example.com/1", "language": "en"},
		{"title": "Second", "body": "second body", "url": "http://example.com/2"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("loaded %d documents, want 2", len(docs))
	}
	if docs[0].Title != "First" || docs[1].URL != "http://example.com/2" {
		t.Errorf("documents = %+v", docs)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSourceMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileSource(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestPrepare(t *testing.T) {
	docs := []clir.Document{
		{Title: "Kept", Body: "Dhaka authorities implemented the system."},
		{Title: "", Body: "dropped, no title"},
		{Title: "Has entities", Body: "text", Language: "bn", NamedEntities: []string{"Provided"}},
	}

	got := Prepare(docs, "en")
	if len(got) != 2 {
		t.Fatalf("Prepare kept %d documents, want 2", len(got))
	}
	if got[0].Language != "en" {
		t.Errorf("missing language not defaulted: %q", got[0].Language)
	}
	if len(got[0].NamedEntities) == 0 {
		t.Error("entities not extracted for document without them")
	}
	if got[1].Language != "bn" {
		t.Errorf("provided language overwritten: %q", got[1].Language)
	}
	if len(got[1].NamedEntities) != 1 || got[1].NamedEntities[0] != "Provided" {
		t.Errorf("provided entities overwritten: %v", got[1].NamedEntities)
	}
}

func TestSampleDocumentsUsable(t *testing.T) {
	docs := SampleDocuments()
	if len(docs) != 5 {
		t.Fatalf("sample corpus has %d documents, want 5", len(docs))
	}
	for i, d := range docs {
		if !d.Valid() {
			t.Errorf("sample document %d invalid: %+v", i, d)
		}
		if d.Language != "en" || d.URL == "" {
			t.Errorf("sample document %d incomplete: %+v", i, d)
		}
	}
}

type stubEmbedder struct {
	vec  []float64
	err  error
	seen int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	s.seen++
	return s.vec, s.err
}

func TestAttachEmbeddings(t *testing.T) {
	docs := Prepare(SampleDocuments(), "en")
	emb := &stubEmbedder{vec: []float64{0.5, 0.5}}

	n := AttachEmbeddings(context.Background(), docs, emb)
	if n != len(docs) {
		t.Fatalf("embedded %d documents, want %d", n, len(docs))
	}
	if emb.seen != len(docs) {
		t.Errorf("embedder called %d times", emb.seen)
	}
	for i, d := range docs {
		if len(d.Embedding) != 2 {
			t.Errorf("document %d embedding = %v", i, d.Embedding)
		}
	}
}

func TestAttachEmbeddingsFailsOpen(t *testing.T) {
	docs := Prepare(SampleDocuments(), "en")
	emb := &stubEmbedder{err: errors.New("service down")}

	n := AttachEmbeddings(context.Background(), docs, emb)
	if n != 0 {
		t.Errorf("embedded %d documents despite failures, want 0", n)
	}
	for i, d := range docs {
		if d.Embedding != nil {
			t.Errorf("document %d got embedding after failure: %v", i, d.Embedding)
		}
	}
}

func TestAttachEmbeddingsNilEmbedder(t *testing.T) {
	docs := Prepare(SampleDocuments(), "en")
	if n := AttachEmbeddings(context.Background(), docs, nil); n != 0 {
		t.Errorf("nil embedder embedded %d documents", n)
	}
}
