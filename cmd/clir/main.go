package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/eval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/export"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/handler"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/index"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/retrieval"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir/search"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/corpus"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/translate"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/config"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/health"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/kafka"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/logger"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/metrics"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/middleware"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/postgres"
	pkgredis "github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/redis"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting retrieval engine",
		"port", cfg.Server.Port,
		"corpus_source", cfg.Corpus.Source,
		"language", cfg.Corpus.Language,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var db *postgres.Client
	if cfg.Corpus.Source == "postgres" || cfg.Export.ArchiveSnapshot {
		db, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	docs, err := loadCorpus(ctx, cfg, db)
	if err != nil {
		slog.Error("failed to load corpus", "error", err)
		os.Exit(1)
	}
	docs = corpus.Prepare(docs, cfg.Corpus.Language)
	if len(docs) == 0 {
		slog.Warn("corpus source yielded no usable documents, using sample data")
		docs = corpus.Prepare(corpus.SampleDocuments(), cfg.Corpus.Language)
	}

	buildStart := time.Now()
	idx := index.Build(docs)
	m.DocsIndexedTotal.Add(float64(idx.TotalDocs()))
	m.IndexBuildDuration.Observe(time.Since(buildStart).Seconds())
	m.VocabularySize.Set(float64(idx.VocabularySize()))
	slog.Info("index built",
		"documents", idx.TotalDocs(),
		"vocabulary", idx.VocabularySize(),
		"avg_doc_length", idx.AvgDocLength(),
		"build_ms", time.Since(buildStart).Milliseconds(),
	)

	registry := retrieval.NewRegistry(idx)

	translator, httpTranslator, redisClient := buildTranslator(cfg, m)
	if redisClient != nil {
		defer redisClient.Close()
	}

	embedCapability := cfg.Embedder.Endpoint != ""
	if embedCapability {
		embedder := translate.NewHTTPEmbedder(cfg.Embedder)
		corpus.AttachEmbeddings(ctx, docs, embedder)
	}

	var events *kafka.Producer
	if cfg.Kafka.Topics.SearchEvents != "" && len(cfg.Kafka.Brokers) > 0 {
		events = kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
		defer events.Close()
		slog.Info("search event stream enabled", "topic", cfg.Kafka.Topics.SearchEvents)
	}

	orchestrator := search.New(idx, registry, search.Options{
		Translator:         translator,
		Language:           cfg.Corpus.Language,
		TranslationTimeout: cfg.Translator.Timeout,
		Workers:            cfg.Search.ScoreWorkers,
		Metrics:            m,
		Events:             events,
	})

	harness := eval.New(orchestrator, registry,
		eval.WithTopK(cfg.Evaluation.TopK),
		eval.WithInspectTop(cfg.Evaluation.InspectTop),
	)

	exporter := export.New(docs, idx, orchestrator.History(), registry, export.Options{
		TranslationEnabled: translator != nil,
		EmbeddingsEnabled:  embedCapability,
		TopTerms:           cfg.Export.TopTerms,
	})

	var archiver handler.SnapshotArchiver
	if cfg.Export.ArchiveSnapshot && db != nil {
		archiver = export.NewStore(db)
		slog.Info("snapshot archiving enabled")
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		if idx.TotalDocs() > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d documents indexed", idx.TotalDocs()),
			}
		}
		return health.ComponentHealth{Status: health.StatusDown, Message: "index empty"}
	})
	if redisClient != nil {
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			if err := redisClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}
	if httpTranslator != nil {
		checker.Register("translator", func(ctx context.Context) health.ComponentHealth {
			if state := httpTranslator.BreakerState(); state != resilience.StateClosed {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: "circuit " + state.String()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}
	if db != nil {
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := db.DB.PingContext(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	h := handler.New(handler.Options{
		Orchestrator: orchestrator,
		Harness:      harness,
		Exporter:     exporter,
		Index:        idx,
		Archiver:     archiver,
		ExportPath:   cfg.Export.Path,
		DefaultTopK:  cfg.Search.DefaultTopK,
		MaxTopK:      cfg.Search.MaxTopK,
		Metrics:      m,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("POST /api/v1/evaluate", h.Evaluate)
	mux.HandleFunc("POST /api/v1/export", h.Export)
	mux.HandleFunc("GET /api/v1/history", h.History)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())
	if cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("retrieval engine listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("retrieval engine stopped")
}

// loadCorpus resolves the configured document source and loads one batch.
func loadCorpus(ctx context.Context, cfg *config.Config, db *postgres.Client) ([]clir.Document, error) {
	switch cfg.Corpus.Source {
	case "postgres":
		return corpus.NewPostgresSource(db, cfg.Corpus.MaxDocuments).Load(ctx)
	case "kafka":
		consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.DocumentBatch, nil)
		defer consumer.Close()
		return corpus.NewKafkaSource(consumer, cfg.Corpus.MaxDocuments, cfg.Corpus.BatchTimeout).Load(ctx)
	default:
		return corpus.NewFileSource(cfg.Corpus.Path).Load(ctx)
	}
}

// buildTranslator wires the optional translation capability: HTTP client with
// retry and circuit breaking, fronted by a Redis cache when Redis is up. A
// nil translator means searches run untranslated. The raw HTTP client is
// returned alongside so health checks can read its breaker state.
func buildTranslator(cfg *config.Config, m *metrics.Metrics) (translate.Translator, *translate.HTTPTranslator, *pkgredis.Client) {
	if cfg.Translator.Endpoint == "" {
		slog.Info("translation capability not configured, queries run untranslated")
		return nil, nil, nil
	}

	httpTranslator := translate.NewHTTPTranslator(cfg.Translator)

	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, translation caching disabled", "error", err)
		return httpTranslator, httpTranslator, nil
	}

	cached := translate.NewCachedTranslator(httpTranslator, redisClient, cfg.Redis)
	cached.SetHitCounter(m.TranslationCacheHits)
	slog.Info("translation cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	return cached, httpTranslator, redisClient
}
