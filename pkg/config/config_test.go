package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Corpus.Source != "file" || cfg.Corpus.Language != "en" {
		t.Errorf("Corpus = %+v", cfg.Corpus)
	}
	if cfg.Search.DefaultTopK != 10 || cfg.Search.MaxTopK != 100 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Evaluation.TopK != 10 || cfg.Evaluation.InspectTop != 3 {
		t.Errorf("Evaluation = %+v", cfg.Evaluation)
	}
	if cfg.Export.TopTerms != 20 {
		t.Errorf("Export.TopTerms = %d", cfg.Export.TopTerms)
	}
	if cfg.Redis.CacheTTL != 24*time.Hour {
		t.Errorf("Redis.CacheTTL = %v", cfg.Redis.CacheTTL)
	}
	if cfg.Translator.Endpoint != "" {
		t.Errorf("Translator.Endpoint = %q, want disabled by default", cfg.Translator.Endpoint)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
corpus:
  source: kafka
  language: bn
search:
  defaultTopK: 25
translator:
  endpoint: http://translate.local/api
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Corpus.Source != "kafka" || cfg.Corpus.Language != "bn" {
		t.Errorf("Corpus = %+v", cfg.Corpus)
	}
	if cfg.Search.DefaultTopK != 25 {
		t.Errorf("Search.DefaultTopK = %d", cfg.Search.DefaultTopK)
	}
	if cfg.Translator.Endpoint != "http://translate.local/api" {
		t.Errorf("Translator.Endpoint = %q", cfg.Translator.Endpoint)
	}
	// Unset values keep their defaults.
	if cfg.Search.MaxTopK != 100 {
		t.Errorf("Search.MaxTopK = %d, want default 100", cfg.Search.MaxTopK)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLIR_SERVER_PORT", "7070")
	t.Setenv("CLIR_CORPUS_SOURCE", "postgres")
	t.Setenv("CLIR_CORPUS_LANGUAGE", "bn")
	t.Setenv("CLIR_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CLIR_TRANSLATOR_ENDPOINT", "http://env-translate")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Corpus.Source != "postgres" || cfg.Corpus.Language != "bn" {
		t.Errorf("Corpus = %+v", cfg.Corpus)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Translator.Endpoint != "http://env-translate" {
		t.Errorf("Translator.Endpoint = %q", cfg.Translator.Endpoint)
	}
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresConfig{
		Host: "db", Port: 5433, Database: "clir",
		User: "u", Password: "p", SSLMode: "disable",
	}.DSN()
	want := "host=db port=5433 user=u password=p dbname=clir sslmode=disable"
	if dsn != want {
		t.Errorf("DSN() = %q, want %q", dsn, want)
	}
}
