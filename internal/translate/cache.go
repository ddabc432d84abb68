package translate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/config"
	pkgredis "github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/redis"
)

const keyPrefix = "clir:translation:"

// CachedTranslator decorates a Translator with a Redis cache keyed on
// (text, source, target). Identical in-flight lookups are collapsed with
// singleflight so a burst of the same foreign-language query costs one
// upstream call. Cache failures are logged and treated as misses; the cache
// never fails a translation that the inner translator could serve.
type CachedTranslator struct {
	inner  Translator
	client *pkgredis.Client
	cfg    config.RedisConfig
	group      singleflight.Group
	logger     *slog.Logger
	hits       atomic.Int64
	misses     atomic.Int64
	hitCounter prometheus.Counter
}

// SetHitCounter registers an optional counter incremented on every cache hit.
func (c *CachedTranslator) SetHitCounter(counter prometheus.Counter) {
	c.hitCounter = counter
}

// NewCachedTranslator wraps inner with the Redis cache.
func NewCachedTranslator(inner Translator, client *pkgredis.Client, cfg config.RedisConfig) *CachedTranslator {
	return &CachedTranslator{
		inner:  inner,
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "translation-cache"),
	}
}

// Translate implements Translator.
func (c *CachedTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	key := c.buildKey(text, sourceLang, targetLang)

	if cached, err := c.client.Get(ctx, key); err == nil {
		c.hits.Add(1)
		if c.hitCounter != nil {
			c.hitCounter.Inc()
		}
		c.logger.Debug("translation cache hit", "source", sourceLang, "target", targetLang)
		return cached, nil
	} else if !pkgredis.IsNilError(err) {
		c.logger.Error("translation cache get failed", "key", key, "error", err)
	}
	c.misses.Add(1)

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		translated, err := c.inner.Translate(ctx, text, sourceLang, targetLang)
		if err != nil {
			return "", err
		}
		if err := c.client.Set(ctx, key, translated, c.cfg.CacheTTL); err != nil {
			c.logger.Error("translation cache set failed", "key", key, "error", err)
		}
		return translated, nil
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

// Stats returns cache hit and miss counts.
func (c *CachedTranslator) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedTranslator) buildKey(text, sourceLang, targetLang string) string {
	raw := fmt.Sprintf("%s|%s|%s", sourceLang, targetLang, text)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
