package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig marks configuration that parsed but fails validation.
// Callers branch on it with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

type NormalizationConfig struct {
	// LegalSuffixes are stripped from organization names on word
	// boundaries, case-insensitively, anywhere in the string.
	LegalSuffixes []string `toml:"legal_suffixes"`
	// Countries maps lowercase aliases to the canonical country name.
	Countries map[string]string `toml:"countries"`
}

type DedupeConfig struct {
	// Threshold on the 0-100 token-sort similarity scale. A candidate
	// scoring strictly above it against an accepted record is dropped.
	Threshold float64 `toml:"threshold"`
}

type SemanticConfig struct {
	SampleSize int     `toml:"sample_size"`
	Threshold  float64 `toml:"threshold"`
	Seed       int64   `toml:"seed"`
}

type EmbeddingConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key" envconfig:"EMBEDDING_API_KEY"`
	BaseURL  string `toml:"base_url"`
}

type FeedConfig struct {
	Countries  []string `toml:"countries"`
	Industries []string `toml:"industries"`
	Total      int      `toml:"total"`
	Seed       int64    `toml:"seed"`
}

type ArtifactConfig struct {
	RawDir        string `toml:"raw_dir"`
	ProcessedDir  string `toml:"processed_dir"`
	RelationalDir string `toml:"relational_dir"`
	AIDir         string `toml:"ai_dir"`
	FinalDir      string `toml:"final_dir"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password" envconfig:"GRAPH_PASSWORD"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Normalization NormalizationConfig `toml:"normalization"`
	Dedupe        DedupeConfig        `toml:"dedupe"`
	Semantic      SemanticConfig      `toml:"semantic"`
	Embedding     EmbeddingConfig     `toml:"embedding"`
	Feed          FeedConfig          `toml:"feed"`
	Artifacts     ArtifactConfig      `toml:"artifacts"`
	Graph         GraphConfig         `toml:"graph"`
	Server        ServerConfig        `toml:"server"`
}

// Default returns the configuration used when no file is present. The
// suffix list and country table mirror the tables shipped in
// config/config.toml.
func Default() *Config {
	return &Config{
		Normalization: NormalizationConfig{
			LegalSuffixes: []string{
				"inc", "llc", "ltd", "limited", "sa", "sarl", "sas",
				"plc", "corp", "corporation", "co", "company", "group",
				"holding", "spa", "lda", "gmbh",
			},
			Countries: defaultCountries(),
		},
		Dedupe:   DedupeConfig{Threshold: 90},
		Semantic: SemanticConfig{SampleSize: 30, Threshold: 0.85, Seed: 42},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "all-minilm",
			BaseURL:  "http://localhost:11434",
		},
		Feed: FeedConfig{
			Countries: []string{
				"Morocco", "Spain", "Portugal", "Italy", "France", "Greece", "Malta",
			},
			Industries: []string{
				"Textiles", "Garment Manufacturing", "Footwear",
				"Leather Goods", "Agriculture", "Packaging", "Logistics",
			},
			Total: 12000,
			Seed:  42,
		},
		Artifacts: ArtifactConfig{
			RawDir:        "data/raw",
			ProcessedDir:  "data/processed",
			RelationalDir: "data/relational",
			AIDir:         "data/ai",
			FinalDir:      "data/final",
		},
		Graph:  GraphConfig{URI: "bolt://localhost:7687"},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load reads the TOML file at path, falling back to defaults when the file
// does not exist, then applies OAR_-prefixed environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults are a complete configuration.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := envconfig.Process("oar", cfg); err != nil {
		return nil, fmt.Errorf("process environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks threshold ranges and sizes. Violations carry
// ErrInvalidConfig so callers can distinguish them from I/O failures.
func (c *Config) Validate() error {
	if c.Dedupe.Threshold <= 0 || c.Dedupe.Threshold > 100 {
		return fmt.Errorf("%w: dedupe threshold %v outside (0,100]", ErrInvalidConfig, c.Dedupe.Threshold)
	}
	if c.Semantic.Threshold <= 0 || c.Semantic.Threshold > 1 {
		return fmt.Errorf("%w: semantic threshold %v outside (0,1]", ErrInvalidConfig, c.Semantic.Threshold)
	}
	if c.Semantic.SampleSize <= 0 {
		return fmt.Errorf("%w: semantic sample size must be positive, got %d", ErrInvalidConfig, c.Semantic.SampleSize)
	}
	if c.Feed.Total < 0 {
		return fmt.Errorf("%w: feed total must not be negative, got %d", ErrInvalidConfig, c.Feed.Total)
	}
	return nil
}
