package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/config"
	"github.com/Tanvir-Hossain-R/CLIR-News-Platform/pkg/resilience"
)

// HTTPTranslator calls an external machine-translation service. Requests are
// bounded by the configured timeout, retried with backoff, and guarded by a
// circuit breaker so a dead translator cannot stall searches.
type HTTPTranslator struct {
	endpoint string
	apiKey   string
	client   *http.Client
	retry    resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
	logger   *slog.Logger
}

// NewHTTPTranslator creates a translator client from config.
func NewHTTPTranslator(cfg config.TranslatorConfig) *HTTPTranslator {
	return &HTTPTranslator{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		retry: resilience.RetryConfig{
			MaxAttempts: cfg.MaxAttempts,
		},
		breaker: resilience.NewCircuitBreaker("translator", resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.FailureTrip,
			ResetTimeout:     cfg.RecoveryWindow,
		}),
		logger: slog.Default().With("component", "translator"),
	}
}

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends the text to the translation service and returns the
// target-language text. Errors are returned to the caller, which falls back
// to the untranslated query.
func (t *HTTPTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	var translated string
	err := t.breaker.Execute(func() error {
		return resilience.Retry(ctx, "translate", t.retry, func() error {
			out, err := t.doRequest(ctx, text, sourceLang, targetLang)
			if err != nil {
				return err
			}
			translated = out
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return translated, nil
}

// BreakerState exposes the circuit state for health reporting.
func (t *HTTPTranslator) BreakerState() resilience.State {
	return t.breaker.GetState()
}

func (t *HTTPTranslator) doRequest(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Text:   text,
		Source: sourceLang,
		Target: targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation service returned %d: %s", resp.StatusCode, body)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding translation response: %w", err)
	}
	return out.TranslatedText, nil
}

// HTTPEmbedder calls an external sentence-embedding service.
type HTTPEmbedder struct {
	endpoint string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPEmbedder creates an embedder client from config.
func NewHTTPEmbedder(cfg config.EmbedderConfig) *HTTPEmbedder {
	return &HTTPEmbedder{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   slog.Default().With("component", "embedder"),
	}
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the embedding vector for text.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(embedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embedding service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding service returned %d: %s", resp.StatusCode, body)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}
	return out.Embedding, nil
}
