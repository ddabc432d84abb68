// Package search runs ranked queries against the built index: optional query
// translation, tokenisation, model scoring over every document, deterministic
// ordering, and append-only history.
package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/tokenizer"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/translate"
	apperrors "github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/errors"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/kafka"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/metrics"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/middleware"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/tracing"
)

// Result is one ranked document with its resolved metadata.
type Result struct {
	DocID int           `json:"doc_id"`
	Score float64       `json:"score"`
	Meta  index.DocMeta `json:"metadata"`
}

// Event is the search record published to the optional Kafka events topic
// for offline analysis.
type Event struct {
	Query      string    `json:"query"`
	Method     string    `json:"method"`
	NumResults int       `json:"num_results"`
	LatencyMs  int64     `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

// Options configures an Orchestrator. Translator, Metrics, and Events are
// optional; absent capabilities degrade, they never fail a search.
type Options struct {
	Translator         translate.Translator
	Language           string
	TranslationTimeout time.Duration
	Workers            int
	Metrics            *metrics.Metrics
	Events             *kafka.Producer
}

// Orchestrator executes searches against an immutable index. It is safe for
// concurrent use: the index and models are read-only and history appends are
// serialised by the log itself.
type Orchestrator struct {
	idx      *index.InvertedIndex
	registry *retrieval.Registry
	history  *History
	opts     Options
	logger   *slog.Logger
}

// New creates an Orchestrator over a built index and model registry.
func New(idx *index.InvertedIndex, registry *retrieval.Registry, opts Options) *Orchestrator {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.TranslationTimeout <= 0 {
		opts.TranslationTimeout = 5 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Orchestrator{
		idx:      idx,
		registry: registry,
		history:  NewHistory(),
		opts:     opts,
		logger:   slog.Default().With("component", "search"),
	}
}

// History returns the orchestrator's append-only search log.
func (o *Orchestrator) History() *History {
	return o.history
}

// Search ranks all documents against the query and returns at most topK
// results ordered by descending score, ties broken by ascending doc id.
// A non-positive topK is a contract violation and fails fast; every other
// degraded condition (translation failure, empty index, no matches) resolves
// to an empty or fallback value.
func (o *Orchestrator) Search(ctx context.Context, query string, method retrieval.Method, topK int, queryLang string) ([]Result, error) {
	if topK <= 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidTopK, 400, "got %d", topK)
	}
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "search", middleware.GetRequestID(ctx))
	defer func() {
		span.End()
		span.Log()
	}()
	span.SetAttr("method", string(method))

	workingQuery, translated := o.translateQuery(ctx, query, queryLang)

	_, tokSpan := tracing.StartChildSpan(ctx, "tokenize")
	queryTerms := tokenizer.Tokenize(workingQuery)
	tokSpan.End()

	model := o.registry.Get(method)
	scored := o.scoreAll(ctx, model, queryTerms)

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].DocID < scored[j].DocID
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]Result, 0, len(scored))
	for _, s := range scored {
		meta, _ := o.idx.Metadata(s.DocID)
		results = append(results, Result{DocID: s.DocID, Score: s.Score, Meta: meta})
	}

	latency := time.Since(start)
	o.record(query, translated, queryLang, model.Name(), latency, results)
	o.observe(model.Name(), latency, len(results))
	o.publish(ctx, query, model.Name(), len(results), latency)

	o.logger.Info("search completed",
		"query", query,
		"method", string(model.Name()),
		"terms", len(queryTerms),
		"results", len(results),
		"latency_ms", latency.Milliseconds(),
	)
	return results, nil
}

// translateQuery returns the working-language query text and, when the
// translation actually changed the text, the translated form for the history
// record. Any translation failure falls back to the original query.
func (o *Orchestrator) translateQuery(ctx context.Context, query, queryLang string) (working, translated string) {
	if queryLang == "" || queryLang == o.opts.Language || o.opts.Translator == nil {
		return query, ""
	}
	_, span := tracing.StartChildSpan(ctx, "translate")
	defer span.End()

	tctx, cancel := context.WithTimeout(ctx, o.opts.TranslationTimeout)
	defer cancel()
	out, err := o.opts.Translator.Translate(tctx, query, queryLang, o.opts.Language)
	if err != nil || out == "" {
		if err != nil {
			o.logger.Warn("query translation failed, using original query",
				"source_lang", queryLang,
				"error", err,
			)
		}
		if o.opts.Metrics != nil {
			o.opts.Metrics.TranslationsTotal.WithLabelValues("failed").Inc()
		}
		return query, ""
	}
	if o.opts.Metrics != nil {
		o.opts.Metrics.TranslationsTotal.WithLabelValues("ok").Inc()
	}
	if out == query {
		return query, ""
	}
	return out, out
}

type scoredDoc struct {
	DocID int
	Score float64
}

// scoreAll evaluates the model for every document id. Scoring fans out over
// a bounded worker pool writing into a doc-id-indexed slice, so concurrency
// cannot change the result.
func (o *Orchestrator) scoreAll(ctx context.Context, model retrieval.Model, queryTerms []string) []scoredDoc {
	total := o.idx.TotalDocs()
	if total == 0 || len(queryTerms) == 0 {
		return nil
	}
	_, span := tracing.StartChildSpan(ctx, "score")
	defer span.End()

	scores := make([]float64, total)
	workers := o.opts.Workers
	if workers > total {
		workers = total
	}
	chunk := (total + workers - 1) / workers

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for docID := lo; docID < hi; docID++ {
				scores[docID] = model.Score(queryTerms, docID)
			}
			return nil
		})
	}
	g.Wait()

	scored := make([]scoredDoc, 0, total)
	for docID, score := range scores {
		if score > 0 {
			scored = append(scored, scoredDoc{DocID: docID, Score: score})
		}
	}
	span.SetAttr("candidates", len(scored))
	return scored
}

func (o *Orchestrator) record(query, translated, queryLang string, method retrieval.Method, latency time.Duration, results []Result) {
	entries := make([]ResultEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, ResultEntry{
			DocID: r.DocID,
			Score: r.Score,
			Title: r.Meta.Title,
			URL:   r.Meta.URL,
		})
	}
	if queryLang == "" {
		queryLang = o.opts.Language
	}
	o.history.Append(Record{
		Query:           query,
		TranslatedQuery: translated,
		QueryLanguage:   queryLang,
		Method:          string(method),
		NumResults:      len(results),
		LatencySeconds:  latency.Seconds(),
		Timestamp:       time.Now().UTC(),
		Results:         entries,
	})
}

func (o *Orchestrator) observe(method retrieval.Method, latency time.Duration, numResults int) {
	if o.opts.Metrics == nil {
		return
	}
	outcome := "hit"
	if numResults == 0 {
		outcome = "zero_result"
	}
	o.opts.Metrics.SearchesTotal.WithLabelValues(string(method), outcome).Inc()
	o.opts.Metrics.SearchLatency.WithLabelValues(string(method)).Observe(latency.Seconds())
	o.opts.Metrics.SearchResultsCount.Observe(float64(numResults))
}

// publish emits the search event to Kafka when an events producer is
// configured. Failures are logged and ignored; the event stream is advisory.
func (o *Orchestrator) publish(ctx context.Context, query string, method retrieval.Method, numResults int, latency time.Duration) {
	if o.opts.Events == nil {
		return
	}
	event := Event{
		Query:      query,
		Method:     string(method),
		NumResults: numResults,
		LatencyMs:  latency.Milliseconds(),
		Timestamp:  time.Now().UTC(),
		RequestID:  middleware.GetRequestID(ctx),
	}
	if err := o.opts.Events.Publish(ctx, kafka.Event{Key: string(method), Value: event}); err != nil {
		o.logger.Warn("search event publish failed", "error", err)
	}
}
