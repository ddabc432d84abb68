// Package eval benchmarks every registered retrieval model against a fixed
// query set. Ranking output is deterministic and test-relevant; the latency
// figures are observational.
package eval

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/search"
)

const (
	defaultTopK       = 10
	defaultInspectTop = 3
)

// TestQuery is one entry of the evaluation query set.
type TestQuery struct {
	Query    string `json:"query"`
	Language string `json:"lang"`
}

// TopDoc is a (title, score) pair retained for inspection.
type TopDoc struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// QueryResult holds the outcome of one query under one model.
type QueryResult struct {
	Query          string   `json:"query"`
	NumResults     int      `json:"num_results"`
	LatencySeconds float64  `json:"latency_seconds"`
	TopDocs        []TopDoc `json:"top_docs"`
}

// ModelStats aggregates a model's behaviour over the full query set.
type ModelStats struct {
	Method              string        `json:"method"`
	QueriesTested       int           `json:"queries_tested"`
	QueryResults        []QueryResult `json:"query_results"`
	TotalLatencySeconds float64       `json:"total_latency_seconds"`
	AvgLatencySeconds   float64       `json:"avg_latency_seconds"`
	P50LatencyMs        int64         `json:"p50_latency_ms"`
	P95LatencyMs        int64         `json:"p95_latency_ms"`
	P99LatencyMs        int64         `json:"p99_latency_ms"`
}

// Harness runs the evaluation across the orchestrator's model registry.
type Harness struct {
	orchestrator *search.Orchestrator
	registry     *retrieval.Registry
	topK         int
	inspectTop   int
	logger       *slog.Logger
}

// Option adjusts harness parameters.
type Option func(*Harness)

// WithTopK overrides the per-query result depth.
func WithTopK(k int) Option {
	return func(h *Harness) {
		if k > 0 {
			h.topK = k
		}
	}
}

// WithInspectTop overrides how many top documents are retained per query.
func WithInspectTop(n int) Option {
	return func(h *Harness) {
		if n > 0 {
			h.inspectTop = n
		}
	}
}

// New creates a Harness over the given orchestrator and registry.
func New(orchestrator *search.Orchestrator, registry *retrieval.Registry, opts ...Option) *Harness {
	h := &Harness{
		orchestrator: orchestrator,
		registry:     registry,
		topK:         defaultTopK,
		inspectTop:   defaultInspectTop,
		logger:       slog.Default().With("component", "evaluation"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Evaluate runs every test query through every registered model and returns
// per-model statistics keyed by method name.
func (h *Harness) Evaluate(ctx context.Context, queries []TestQuery) (map[string]ModelStats, error) {
	out := make(map[string]ModelStats, 2)

	for _, method := range h.registry.Methods() {
		stats := ModelStats{
			Method:        string(method),
			QueriesTested: len(queries),
			QueryResults:  make([]QueryResult, 0, len(queries)),
		}
		latencies := make([]int64, 0, len(queries))

		for _, tq := range queries {
			start := time.Now()
			results, err := h.orchestrator.Search(ctx, tq.Query, method, h.topK, tq.Language)
			if err != nil {
				return nil, err
			}
			elapsed := time.Since(start)

			stats.TotalLatencySeconds += elapsed.Seconds()
			latencies = append(latencies, elapsed.Milliseconds())

			top := results
			if len(top) > h.inspectTop {
				top = top[:h.inspectTop]
			}
			topDocs := make([]TopDoc, 0, len(top))
			for _, r := range top {
				topDocs = append(topDocs, TopDoc{Title: r.Meta.Title, Score: r.Score})
			}
			stats.QueryResults = append(stats.QueryResults, QueryResult{
				Query:          tq.Query,
				NumResults:     len(results),
				LatencySeconds: elapsed.Seconds(),
				TopDocs:        topDocs,
			})

			h.logger.Debug("evaluation query done",
				"method", string(method),
				"query", tq.Query,
				"results", len(results),
				"latency_ms", elapsed.Milliseconds(),
			)
		}

		if len(queries) > 0 {
			stats.AvgLatencySeconds = stats.TotalLatencySeconds / float64(len(queries))
		}
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		stats.P50LatencyMs = percentile(latencies, 50)
		stats.P95LatencyMs = percentile(latencies, 95)
		stats.P99LatencyMs = percentile(latencies, 99)

		out[string(method)] = stats
		h.logger.Info("model evaluated",
			"method", string(method),
			"queries", len(queries),
			"avg_latency_s", stats.AvgLatencySeconds,
		)
	}
	return out, nil
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
