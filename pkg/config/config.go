// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Server, Corpus, Translator, Search, Export, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Redis      RedisConfig      `yaml:"redis"`
	Translator TranslatorConfig `yaml:"translator"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Search     SearchConfig     `yaml:"search"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Export     ExportConfig     `yaml:"export"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// CorpusConfig controls where the document batch is loaded from and the
// working language of the index. Source is one of "file", "postgres", or
// "kafka".
type CorpusConfig struct {
	Source       string        `yaml:"source"`
	Path         string        `yaml:"path"`
	Language     string        `yaml:"language"`
	MaxDocuments int           `yaml:"maxDocuments"`
	BatchTimeout time.Duration `yaml:"batchTimeout"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Brokers       []string    `yaml:"brokers"`
	ConsumerGroup string      `yaml:"consumerGroup"`
	Topics        KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	DocumentBatch string `yaml:"documentBatch"`
	SearchEvents  string `yaml:"searchEvents"`
}

// RedisConfig holds Redis connection parameters for the translation cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// TranslatorConfig controls the optional query-translation capability. When
// Endpoint is empty the capability is absent and searches run untranslated.
type TranslatorConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	APIKey         string        `yaml:"apiKey"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxAttempts    int           `yaml:"maxAttempts"`
	FailureTrip    int           `yaml:"failureTrip"`
	RecoveryWindow time.Duration `yaml:"recoveryWindow"`
}

// EmbedderConfig controls the optional document-embedding capability.
type EmbedderConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SearchConfig controls query execution limits and the scoring worker pool.
type SearchConfig struct {
	DefaultTopK  int `yaml:"defaultTopK"`
	MaxTopK      int `yaml:"maxTopK"`
	ScoreWorkers int `yaml:"scoreWorkers"`
}

// EvaluationConfig controls the retrieval evaluation harness.
type EvaluationConfig struct {
	TopK       int `yaml:"topK"`
	InspectTop int `yaml:"inspectTop"`
}

// ExportConfig controls the snapshot export destination.
type ExportConfig struct {
	Path            string `yaml:"path"`
	TopTerms        int    `yaml:"topTerms"`
	ArchiveSnapshot bool   `yaml:"archiveSnapshot"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config with defaults suitable for local development.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Corpus: CorpusConfig{
			Source:       "file",
			Path:         "data/articles.json",
			Language:     "en",
			MaxDocuments: 5000,
			BatchTimeout: 30 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "clir",
			User:            "clir",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			ConsumerGroup: "clir-engine",
			Topics: KafkaTopics{
				DocumentBatch: "document-batch",
				SearchEvents:  "search-events",
			},
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 10,
			CacheTTL: 24 * time.Hour,
		},
		Translator: TranslatorConfig{
			Endpoint:       "",
			Timeout:        5 * time.Second,
			MaxAttempts:    2,
			FailureTrip:    5,
			RecoveryWindow: 30 * time.Second,
		},
		Embedder: EmbedderConfig{
			Endpoint: "",
			Model:    "paraphrase-multilingual-MiniLM-L12-v2",
			Timeout:  10 * time.Second,
		},
		Search: SearchConfig{
			DefaultTopK:  10,
			MaxTopK:      100,
			ScoreWorkers: 4,
		},
		Evaluation: EvaluationConfig{
			TopK:       10,
			InspectTop: 3,
		},
		Export: ExportConfig{
			Path:     "clir_complete_data.json",
			TopTerms: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads CLIR_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLIR_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CLIR_CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = v
	}
	if v := os.Getenv("CLIR_CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("CLIR_CORPUS_LANGUAGE"); v != "" {
		cfg.Corpus.Language = v
	}
	if v := os.Getenv("CLIR_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("CLIR_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("CLIR_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("CLIR_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("CLIR_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("CLIR_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLIR_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CLIR_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CLIR_TRANSLATOR_ENDPOINT"); v != "" {
		cfg.Translator.Endpoint = v
	}
	if v := os.Getenv("CLIR_TRANSLATOR_API_KEY"); v != "" {
		cfg.Translator.APIKey = v
	}
	if v := os.Getenv("CLIR_EMBEDDER_ENDPOINT"); v != "" {
		cfg.Embedder.Endpoint = v
	}
	if v := os.Getenv("CLIR_EXPORT_PATH"); v != "" {
		cfg.Export.Path = v
	}
	if v := os.Getenv("CLIR_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CLIR_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
