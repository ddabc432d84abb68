// Package handler exposes the retrieval engine over HTTP: search, index
// statistics, evaluation, snapshot export, and the search history log.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/eval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/export"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/search"
	apperrors "github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/errors"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/logger"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/metrics"
)

// SnapshotArchiver persists exported snapshots outside the local filesystem.
type SnapshotArchiver interface {
	Save(ctx context.Context, snap export.Snapshot) error
}

// Handler serves the engine's API endpoints.
type Handler struct {
	orchestrator *search.Orchestrator
	harness      *eval.Harness
	exporter     *export.Exporter
	idx          *index.InvertedIndex
	archiver     SnapshotArchiver
	exportPath   string
	defaultTopK  int
	maxTopK      int
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// Options bundles the handler's collaborators. Archiver and Metrics are
// optional.
type Options struct {
	Orchestrator *search.Orchestrator
	Harness      *eval.Harness
	Exporter     *export.Exporter
	Index        *index.InvertedIndex
	Archiver     SnapshotArchiver
	ExportPath   string
	DefaultTopK  int
	MaxTopK      int
	Metrics      *metrics.Metrics
}

// New creates a Handler.
func New(opts Options) *Handler {
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 10
	}
	if opts.MaxTopK <= 0 {
		opts.MaxTopK = 100
	}
	return &Handler{
		orchestrator: opts.Orchestrator,
		harness:      opts.Harness,
		exporter:     opts.Exporter,
		idx:          opts.Index,
		archiver:     opts.Archiver,
		exportPath:   opts.ExportPath,
		defaultTopK:  opts.DefaultTopK,
		maxTopK:      opts.MaxTopK,
		metrics:      opts.Metrics,
		logger:       slog.Default().With("component", "api-handler"),
	}
}

// searchResponse is the search endpoint's payload.
type searchResponse struct {
	Query     string          `json:"query"`
	Method    string          `json:"method"`
	TopK      int             `json:"top_k"`
	QueryLang string          `json:"query_lang"`
	Results   []search.Result `json:"results"`
	LatencyMs int64           `json:"latency_ms"`
}

// Search handles GET /api/v1/search?q=...&method=...&top_k=...&lang=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	topK := h.defaultTopK
	if topKStr := r.URL.Query().Get("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "top_k must be a positive integer")
			return
		}
		if parsed > h.maxTopK {
			parsed = h.maxTopK
		}
		topK = parsed
	}

	method := retrieval.ParseMethod(r.URL.Query().Get("method"))
	queryLang := r.URL.Query().Get("lang")

	results, err := h.orchestrator.Search(ctx, query, method, topK, queryLang)
	if err != nil {
		log.Error("search failed", "query", query, "error", err)
		h.writeAppError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, searchResponse{
		Query:     query,
		Method:    string(method),
		TopK:      topK,
		QueryLang: queryLang,
		Results:   results,
		LatencyMs: time.Since(start).Milliseconds(),
	})
}

// evaluateRequest is the evaluation endpoint's body. An empty or absent body
// runs the built-in query set.
type evaluateRequest struct {
	Queries []eval.TestQuery `json:"queries"`
}

// defaultEvalQueries exercises the built-in sample corpus.
var defaultEvalQueries = []eval.TestQuery{
	{Query: "Bangladesh economy growth", Language: "en"},
	{Query: "Dhaka traffic congestion", Language: "en"},
	{Query: "education reform digital", Language: "en"},
	{Query: "renewable energy solar", Language: "en"},
	{Query: "healthcare infrastructure", Language: "en"},
}

// Evaluate handles POST /api/v1/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid evaluation request body")
		return
	}
	queries := req.Queries
	if len(queries) == 0 {
		queries = defaultEvalQueries
	}

	stats, err := h.harness.Evaluate(ctx, queries)
	if err != nil {
		log.Error("evaluation failed", "error", err)
		h.writeAppError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.EvaluationsTotal.Inc()
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// Export handles POST /api/v1/export: the snapshot is written to the
// configured path and archived when an archiver is wired.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	snap := h.exporter.Export()

	if err := h.exporter.WriteFile(h.exportPath); err != nil {
		log.Error("snapshot export failed", "path", h.exportPath, "error", err)
		h.writeError(w, http.StatusInternalServerError, "snapshot export failed")
		return
	}

	archived := false
	if h.archiver != nil {
		if err := h.archiver.Save(ctx, snap); err != nil {
			log.Warn("snapshot archive failed", "error", err)
		} else {
			archived = true
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "exported",
		"path":            h.exportPath,
		"documents":       snap.Metadata.TotalDocuments,
		"vocabulary_size": snap.IndexStatistics.VocabularySize,
		"history_entries": len(snap.SearchHistory),
		"archived":        archived,
	})
}

// History handles GET /api/v1/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records := h.orchestrator.History().Snapshot()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(records),
		"searches": records,
	})
}

// Stats handles GET /api/v1/stats with a summary of the built index.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total_documents":         h.idx.TotalDocs(),
		"vocabulary_size":         h.idx.VocabularySize(),
		"average_document_length": h.idx.AvgDocLength(),
		"total_postings":          h.idx.TotalPostings(),
		"top_frequent_terms":      h.idx.TopTerms(20),
	})
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusCode(err)
	msg := "internal error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Error()
	} else if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	h.writeError(w, status, msg)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
