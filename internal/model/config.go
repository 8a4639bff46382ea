package model

import (
	"os"
	"path/filepath"
	"time"
)

// RejectPolicy controls what a "reject" decision does during curation.
type RejectPolicy string

const (
	// RejectRecord appends rejected quotes to the verified log with
	// historically_significant=false, so every reviewed quote is recorded.
	RejectRecord RejectPolicy = "record"

	// RejectAdvance advances past rejected quotes without recording them.
	RejectAdvance RejectPolicy = "advance"
)

// Config holds the complete application configuration.
type Config struct {
	Data        DataConfig        `yaml:"data"`
	Store       StoreConfig       `yaml:"store"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Curation    CurationConfig    `yaml:"curation"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// DataConfig locates the corpus inputs.
type DataConfig struct {
	QuotesPath     string `yaml:"quotes_path"`     // quotes.json or block-text interchange file
	CharactersPath string `yaml:"characters_path"` // character metadata, JSON or YAML
}

// StoreConfig configures the verified-quote persistence chain.
type StoreConfig struct {
	DatabasePath string        `yaml:"database_path"` // SQLite durable store
	CachePath    string        `yaml:"cache_path"`    // JSON fallback cache
	WriteTimeout time.Duration `yaml:"write_timeout"` // Durable write deadline; expiry counts as failure
}

// HTTPConfig configures the source-text fetcher.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	HTTPProxy         string        `yaml:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// CacheConfig configures the layered fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// CurationConfig configures the review workflow.
type CurationConfig struct {
	RejectPolicy RejectPolicy `yaml:"reject_policy"`
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers"` // Books extracted in parallel
}

// OutputConfig controls diagnostics.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults rooted under ~/.herodotus.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".herodotus")

	return &Config{
		Data: DataConfig{
			QuotesPath:     filepath.Join(base, "quotes.json"),
			CharactersPath: filepath.Join(base, "characters.json"),
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(base, "verified.db"),
			CachePath:    filepath.Join(base, "verified_cache.json"),
			WriteTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:           2 * time.Minute,
			UserAgent:         "herodotus-quotes/0.1 (+https://github.com/miguelito4/herodotus-quotes)",
			MaxBodyBytes:      8_000_000,
			RequestsPerSecond: 1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Curation: CurationConfig{
			RejectPolicy: RejectRecord,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
