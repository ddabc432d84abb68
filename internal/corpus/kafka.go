package corpus

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/internal/clir"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/kafka"
)

// KafkaSource drains the crawler's document topic into one batch. The topic
// is treated as a staging buffer: collection stops after maxDocuments or once
// the topic stays idle for batchTimeout, whichever comes first.
type KafkaSource struct {
	consumer     *kafka.Consumer
	maxDocuments int
	batchTimeout time.Duration
	logger       *slog.Logger
}

// NewKafkaSource creates a source draining the given consumer.
func NewKafkaSource(consumer *kafka.Consumer, maxDocuments int, batchTimeout time.Duration) *KafkaSource {
	if batchTimeout <= 0 {
		batchTimeout = 5 * time.Second
	}
	return &KafkaSource{
		consumer:     consumer,
		maxDocuments: maxDocuments,
		batchTimeout: batchTimeout,
		logger:       slog.Default().With("component", "corpus-kafka"),
	}
}

// Load implements Source.
func (s *KafkaSource) Load(ctx context.Context) ([]clir.Document, error) {
	var docs []clir.Document
	for s.maxDocuments <= 0 || len(docs) < s.maxDocuments {
		value, err := s.consumer.FetchOne(ctx, s.batchTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Idle timeout: the topic has no more staged documents.
			break
		}
		doc, err := kafka.DecodeJSON[clir.Document](value)
		if err != nil {
			s.logger.Warn("skipping malformed document message", "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	s.logger.Info("corpus drained from kafka", "documents", len(docs))
	return docs, nil
}
