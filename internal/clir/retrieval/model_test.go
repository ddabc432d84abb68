package retrieval

import (
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input string
		want  Method
	}{
		{"tfidf", MethodTFIDF},
		{"bm25", MethodBM25},
		{"", MethodBM25},
		{"TFIDF", MethodBM25},
		{"cosine", MethodBM25},
	}
	for _, tt := range tests {
		if got := ParseMethod(tt.input); got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRegistryGetFallsBackToBM25(t *testing.T) {
	reg := NewRegistry(buildTestIndex())

	if got := reg.Get(MethodTFIDF).Name(); got != MethodTFIDF {
		t.Errorf("Get(tfidf).Name() = %q", got)
	}
	if got := reg.Get(Method("nonsense")).Name(); got != MethodBM25 {
		t.Errorf("Get(nonsense).Name() = %q, want bm25", got)
	}
}

func TestRegistryMethodsOrder(t *testing.T) {
	reg := NewRegistry(buildTestIndex())
	methods := reg.Methods()
	if len(methods) != 2 || methods[0] != MethodTFIDF || methods[1] != MethodBM25 {
		t.Errorf("Methods() = %v", methods)
	}
}

func TestRegistryParameters(t *testing.T) {
	reg := NewRegistry(buildTestIndex())
	info := reg.Parameters()

	bm25, ok := info["bm25"]
	if !ok {
		t.Fatal("Parameters missing bm25 entry")
	}
	if bm25.Parameters["k1"] != DefaultK1 || bm25.Parameters["b"] != DefaultB {
		t.Errorf("bm25 parameters = %v", bm25.Parameters)
	}

	tfidf, ok := info["tfidf"]
	if !ok {
		t.Fatal("Parameters missing tfidf entry")
	}
	if tfidf.Parameters != nil {
		t.Errorf("tfidf should carry no parameters, got %v", tfidf.Parameters)
	}
}
